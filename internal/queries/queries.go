// CommerceLens - E-commerce Analytics Dashboard
// Copyright 2026 CommerceLens Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/commercelens/commercelens

// Package queries holds the named SQL templates for every dashboard report,
// grouped by functional area. Templates are static; all runtime values bind
// through positional ? parameters, never string interpolation.
package queries

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrNotFound is returned by Get for an unregistered area or name.
var ErrNotFound = errors.New("query not found")

// Query is one registered report query.
type Query struct {
	Area string
	Name string
	SQL  string

	// Params names the positional parameters the SQL expects, in order.
	Params []string
}

// ID returns the operation identifier used for cache keys ("area.name").
func (q Query) ID() string {
	return q.Area + "." + q.Name
}

// Star-schema table names in the warehouse.
var tableNames = map[string]string{
	"fact_order_items": "fact_order_items",
	"dim_customer":     "dim_customer",
	"dim_orders":       "dim_orders",
	"dim_product":      "dim_product",
	"dim_seller":       "dim_seller",
	"dim_payment":      "dim_payment",
	"dim_order_reviews": "dim_order_reviews",
	"dim_date":         "dim_date",
}

var registry map[string]map[string]Query

//nolint:gochecknoinits // registry is static data bound once
func init() {
	pairs := make([]string, 0, len(tableNames)*2)
	for placeholder, name := range tableNames {
		pairs = append(pairs, "{"+placeholder+"}", name)
	}
	replacer := strings.NewReplacer(pairs...)

	registry = make(map[string]map[string]Query)
	for _, q := range templates {
		q.SQL = replacer.Replace(q.SQL)
		if _, ok := registry[q.Area]; !ok {
			registry[q.Area] = make(map[string]Query)
		}
		registry[q.Area][q.Name] = q
	}
}

// Get returns the registered query for area and name.
func Get(area, name string) (Query, error) {
	byName, ok := registry[area]
	if !ok {
		return Query{}, fmt.Errorf("unknown query area %s: %w", area, ErrNotFound)
	}
	q, ok := byName[name]
	if !ok {
		return Query{}, fmt.Errorf("unknown query %s in area %s: %w", name, area, ErrNotFound)
	}
	return q, nil
}

// List returns every registered query, ordered by area then name.
func List() []Query {
	out := make([]Query, 0, 16)
	for _, byName := range registry {
		for _, q := range byName {
			out = append(out, q)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Area != out[j].Area {
			return out[i].Area < out[j].Area
		}
		return out[i].Name < out[j].Name
	})
	return out
}

var dateRangeParams = []string{"start_date", "end_date"}

var templates = []Query{
	// Executive summary
	{
		Area: "executive", Name: "key_metrics",
		SQL: `
SELECT
    ROUND(AVG(CASE WHEN o.order_delivered_customer_date <= o.order_estimated_delivery_date THEN 1.0 ELSE 0.0 END) * 100, 1) AS on_time_delivery_rate,
    ROUND(AVG(r.review_score), 2) AS avg_rating,
    ROUND(SUM(f.price + f.freight_value), 2) AS total_revenue,
    COUNT(DISTINCT f.customer_sk) AS active_customers,
    COUNT(DISTINCT f.order_id) AS total_orders
FROM {fact_order_items} f
LEFT JOIN {dim_orders} o ON f.order_sk = o.order_sk
LEFT JOIN {dim_order_reviews} r ON f.order_sk = r.order_sk
WHERE o.order_purchase_timestamp >= CURRENT_DATE - INTERVAL 30 DAY`,
	},
	{
		Area: "executive", Name: "daily_trends",
		Params: []string{"days"},
		SQL: `
SELECT
    d.date_value,
    COUNT(DISTINCT f.order_id) AS daily_orders,
    ROUND(SUM(f.price + f.freight_value), 2) AS daily_revenue,
    ROUND(AVG(r.review_score), 2) AS daily_avg_rating,
    ROUND(AVG(CASE WHEN o.order_delivered_customer_date <= o.order_estimated_delivery_date THEN 1.0 ELSE 0.0 END) * 100, 1) AS daily_on_time_rate
FROM {fact_order_items} f
LEFT JOIN {dim_orders} o ON f.order_sk = o.order_sk
LEFT JOIN {dim_order_reviews} r ON f.order_sk = r.order_sk
LEFT JOIN {dim_date} d ON f.order_date_sk = d.date_sk
WHERE d.date_value >= CURRENT_DATE - INTERVAL (?) DAY
GROUP BY d.date_value
ORDER BY d.date_value`,
	},
	{
		Area: "executive", Name: "geographic_performance",
		SQL: `
SELECT
    c.customer_state,
    COUNT(DISTINCT f.order_id) AS order_count,
    ROUND(AVG(r.review_score), 2) AS avg_rating,
    ROUND(AVG(CASE WHEN o.order_delivered_customer_date <= o.order_estimated_delivery_date THEN 1.0 ELSE 0.0 END) * 100, 1) AS on_time_rate,
    ROUND(SUM(f.price + f.freight_value), 2) AS total_revenue
FROM {fact_order_items} f
LEFT JOIN {dim_customer} c ON f.customer_sk = c.customer_sk
LEFT JOIN {dim_orders} o ON f.order_sk = o.order_sk
LEFT JOIN {dim_order_reviews} r ON f.order_sk = r.order_sk
WHERE o.order_purchase_timestamp >= CURRENT_DATE - INTERVAL 90 DAY
GROUP BY c.customer_state
ORDER BY order_count DESC`,
	},

	// Delivery performance
	{
		Area: "delivery", Name: "delivery_metrics",
		Params: dateRangeParams,
		SQL: `
SELECT
    COUNT(*) AS total_orders,
    SUM(CASE WHEN o.order_delivered_customer_date <= o.order_estimated_delivery_date THEN 1 ELSE 0 END) AS on_time_orders,
    ROUND(AVG(CASE WHEN o.order_delivered_customer_date <= o.order_estimated_delivery_date THEN 1.0 ELSE 0.0 END) * 100, 2) AS on_time_percentage,
    ROUND(AVG(date_diff('day', o.order_purchase_timestamp, o.order_delivered_customer_date)), 1) AS avg_delivery_days,
    ROUND(AVG(date_diff('day', o.order_estimated_delivery_date, o.order_delivered_customer_date)), 1) AS avg_delay_days
FROM {fact_order_items} f
JOIN {dim_orders} o ON f.order_sk = o.order_sk
WHERE o.order_delivered_customer_date IS NOT NULL
AND o.order_purchase_timestamp >= ?
AND o.order_purchase_timestamp <= ?`,
	},
	{
		Area: "delivery", Name: "delivery_by_state",
		Params: dateRangeParams,
		SQL: `
SELECT
    c.customer_state,
    s.seller_state,
    COUNT(*) AS order_count,
    ROUND(AVG(CASE WHEN o.order_delivered_customer_date <= o.order_estimated_delivery_date THEN 1.0 ELSE 0.0 END) * 100, 1) AS on_time_rate,
    ROUND(AVG(date_diff('day', o.order_purchase_timestamp, o.order_delivered_customer_date)), 1) AS avg_delivery_days
FROM {fact_order_items} f
JOIN {dim_orders} o ON f.order_sk = o.order_sk
JOIN {dim_customer} c ON f.customer_sk = c.customer_sk
JOIN {dim_seller} s ON f.seller_sk = s.seller_sk
WHERE o.order_delivered_customer_date IS NOT NULL
AND o.order_purchase_timestamp >= ?
AND o.order_purchase_timestamp <= ?
GROUP BY c.customer_state, s.seller_state
HAVING COUNT(*) >= 10
ORDER BY order_count DESC`,
	},
	{
		Area: "delivery", Name: "delivery_time_distribution",
		Params: dateRangeParams,
		SQL: `
SELECT
    CASE
        WHEN date_diff('day', o.order_purchase_timestamp, o.order_delivered_customer_date) <= 7 THEN '1-7 days'
        WHEN date_diff('day', o.order_purchase_timestamp, o.order_delivered_customer_date) <= 14 THEN '8-14 days'
        WHEN date_diff('day', o.order_purchase_timestamp, o.order_delivered_customer_date) <= 21 THEN '15-21 days'
        WHEN date_diff('day', o.order_purchase_timestamp, o.order_delivered_customer_date) <= 30 THEN '22-30 days'
        ELSE '30+ days'
    END AS delivery_time_bucket,
    COUNT(*) AS order_count,
    ROUND(COUNT(*) * 100.0 / SUM(COUNT(*)) OVER(), 1) AS percentage
FROM {fact_order_items} f
JOIN {dim_orders} o ON f.order_sk = o.order_sk
WHERE o.order_delivered_customer_date IS NOT NULL
AND o.order_purchase_timestamp >= ?
AND o.order_purchase_timestamp <= ?
GROUP BY delivery_time_bucket
ORDER BY CASE delivery_time_bucket
    WHEN '1-7 days' THEN 1
    WHEN '8-14 days' THEN 2
    WHEN '15-21 days' THEN 3
    WHEN '22-30 days' THEN 4
    WHEN '30+ days' THEN 5
END`,
	},

	// Customer satisfaction
	{
		Area: "satisfaction", Name: "rating_analysis",
		Params: dateRangeParams,
		SQL: `
SELECT
    r.review_score,
    COUNT(*) AS review_count,
    ROUND(COUNT(*) * 100.0 / SUM(COUNT(*)) OVER(), 1) AS percentage,
    ROUND(AVG(CASE WHEN o.order_delivered_customer_date <= o.order_estimated_delivery_date THEN 1.0 ELSE 0.0 END) * 100, 1) AS on_time_rate
FROM {fact_order_items} f
JOIN {dim_order_reviews} r ON f.order_sk = r.order_sk
JOIN {dim_orders} o ON f.order_sk = o.order_sk
WHERE r.review_score IS NOT NULL
AND o.order_purchase_timestamp >= ?
AND o.order_purchase_timestamp <= ?
GROUP BY r.review_score
ORDER BY r.review_score`,
	},
	{
		Area: "satisfaction", Name: "satisfaction_vs_delivery",
		Params: dateRangeParams,
		SQL: `
SELECT
    CASE WHEN o.order_delivered_customer_date <= o.order_estimated_delivery_date THEN 'On Time' ELSE 'Delayed' END AS delivery_status,
    ROUND(AVG(r.review_score), 2) AS avg_rating,
    COUNT(*) AS review_count,
    count_if(r.review_score >= 4) AS positive_reviews,
    count_if(r.review_score <= 2) AS negative_reviews
FROM {fact_order_items} f
JOIN {dim_order_reviews} r ON f.order_sk = r.order_sk
JOIN {dim_orders} o ON f.order_sk = o.order_sk
WHERE r.review_score IS NOT NULL
AND o.order_delivered_customer_date IS NOT NULL
AND o.order_purchase_timestamp >= ?
AND o.order_purchase_timestamp <= ?
GROUP BY delivery_status`,
	},
	{
		Area: "satisfaction", Name: "category_satisfaction",
		Params: dateRangeParams,
		SQL: `
SELECT
    p.product_category_name_english AS category,
    ROUND(AVG(r.review_score), 2) AS avg_rating,
    COUNT(*) AS review_count,
    ROUND(AVG(CASE WHEN o.order_delivered_customer_date <= o.order_estimated_delivery_date THEN 1.0 ELSE 0.0 END) * 100, 1) AS on_time_rate
FROM {fact_order_items} f
JOIN {dim_order_reviews} r ON f.order_sk = r.order_sk
JOIN {dim_orders} o ON f.order_sk = o.order_sk
JOIN {dim_product} p ON f.product_sk = p.product_sk
WHERE r.review_score IS NOT NULL
AND p.product_category_name_english IS NOT NULL
AND o.order_purchase_timestamp >= ?
AND o.order_purchase_timestamp <= ?
GROUP BY p.product_category_name_english
HAVING COUNT(*) >= 50
ORDER BY avg_rating DESC`,
	},

	// Product analysis
	{
		Area: "product", Name: "weight_impact",
		Params: dateRangeParams,
		SQL: `
SELECT
    CASE
        WHEN p.product_weight_g <= 500 THEN '0-500g'
        WHEN p.product_weight_g <= 1000 THEN '501-1000g'
        WHEN p.product_weight_g <= 2000 THEN '1-2kg'
        WHEN p.product_weight_g <= 5000 THEN '2-5kg'
        ELSE '5kg+'
    END AS weight_category,
    COUNT(*) AS order_count,
    ROUND(AVG(date_diff('day', o.order_purchase_timestamp, o.order_delivered_customer_date)), 1) AS avg_delivery_days,
    ROUND(AVG(r.review_score), 2) AS avg_rating,
    ROUND(AVG(CASE WHEN o.order_delivered_customer_date <= o.order_estimated_delivery_date THEN 1.0 ELSE 0.0 END) * 100, 1) AS on_time_rate
FROM {fact_order_items} f
JOIN {dim_product} p ON f.product_sk = p.product_sk
JOIN {dim_orders} o ON f.order_sk = o.order_sk
LEFT JOIN {dim_order_reviews} r ON f.order_sk = r.order_sk
WHERE p.product_weight_g IS NOT NULL
AND o.order_delivered_customer_date IS NOT NULL
AND o.order_purchase_timestamp >= ?
AND o.order_purchase_timestamp <= ?
GROUP BY weight_category
ORDER BY CASE weight_category
    WHEN '0-500g' THEN 1
    WHEN '501-1000g' THEN 2
    WHEN '1-2kg' THEN 3
    WHEN '2-5kg' THEN 4
    WHEN '5kg+' THEN 5
END`,
	},
	{
		Area: "product", Name: "category_performance",
		Params: dateRangeParams,
		SQL: `
SELECT
    p.product_category_name_english AS category,
    COUNT(*) AS order_count,
    ROUND(SUM(f.price), 2) AS total_revenue,
    ROUND(AVG(f.price), 2) AS avg_price,
    ROUND(AVG(p.product_weight_g), 1) AS avg_weight,
    ROUND(AVG(r.review_score), 2) AS avg_rating,
    ROUND(AVG(CASE WHEN o.order_delivered_customer_date <= o.order_estimated_delivery_date THEN 1.0 ELSE 0.0 END) * 100, 1) AS on_time_rate
FROM {fact_order_items} f
JOIN {dim_product} p ON f.product_sk = p.product_sk
JOIN {dim_orders} o ON f.order_sk = o.order_sk
LEFT JOIN {dim_order_reviews} r ON f.order_sk = r.order_sk
WHERE p.product_category_name_english IS NOT NULL
AND o.order_purchase_timestamp >= ?
AND o.order_purchase_timestamp <= ?
GROUP BY p.product_category_name_english
HAVING COUNT(*) >= 100
ORDER BY order_count DESC`,
	},

	// Payment analysis
	{
		Area: "payment", Name: "payment_method_analysis",
		Params: dateRangeParams,
		SQL: `
SELECT
    pm.payment_type,
    COUNT(*) AS order_count,
    ROUND(SUM(f.price + f.freight_value), 2) AS total_value,
    ROUND(AVG(f.price + f.freight_value), 2) AS avg_order_value,
    ROUND(AVG(pm.payment_installments), 1) AS avg_installments,
    ROUND(AVG(r.review_score), 2) AS avg_rating
FROM {fact_order_items} f
JOIN {dim_payment} pm ON f.payment_sk = pm.payment_sk
LEFT JOIN {dim_order_reviews} r ON f.order_sk = r.order_sk
JOIN {dim_orders} o ON f.order_sk = o.order_sk
WHERE pm.payment_type IS NOT NULL
AND o.order_purchase_timestamp >= ?
AND o.order_purchase_timestamp <= ?
GROUP BY pm.payment_type
ORDER BY order_count DESC`,
	},
	{
		Area: "payment", Name: "installment_analysis",
		Params: dateRangeParams,
		SQL: `
SELECT
    pm.payment_installments,
    COUNT(*) AS order_count,
    ROUND(AVG(f.price + f.freight_value), 2) AS avg_order_value,
    ROUND(AVG(r.review_score), 2) AS avg_rating
FROM {fact_order_items} f
JOIN {dim_payment} pm ON f.payment_sk = pm.payment_sk
LEFT JOIN {dim_order_reviews} r ON f.order_sk = r.order_sk
JOIN {dim_orders} o ON f.order_sk = o.order_sk
WHERE pm.payment_installments IS NOT NULL
AND pm.payment_installments <= 24
AND o.order_purchase_timestamp >= ?
AND o.order_purchase_timestamp <= ?
GROUP BY pm.payment_installments
ORDER BY pm.payment_installments`,
	},
}
