// CommerceLens - E-commerce Analytics Dashboard
// Copyright 2026 CommerceLens Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/commercelens/commercelens

package dataservice

import (
	"context"

	"github.com/commercelens/commercelens/internal/models"
	"github.com/commercelens/commercelens/internal/queries"
)

// SampleExecutor is a warehouse.Executor that serves canned datasets, for
// development without warehouse credentials. Results are keyed by the
// query text the registry produced, so every registered report resolves.
type SampleExecutor struct {
	bySQL map[string]models.Dataset
}

// NewSampleExecutor builds the canned dataset table.
func NewSampleExecutor() *SampleExecutor {
	e := &SampleExecutor{bySQL: make(map[string]models.Dataset)}
	for _, q := range queries.List() {
		e.bySQL[q.SQL] = sampleFor(q.ID())
	}
	return e
}

// Execute returns the canned dataset for the query. Unknown queries return
// an empty dataset rather than an error: sample mode must never fail a page.
func (e *SampleExecutor) Execute(_ context.Context, query string, _ ...interface{}) (models.Dataset, error) {
	if ds, ok := e.bySQL[query]; ok {
		return ds, nil
	}
	return models.Dataset{Columns: []models.Column{}, Rows: [][]interface{}{}}, nil
}

func sample(names []string, types []string, rows ...[]interface{}) models.Dataset {
	cols := make([]models.Column, len(names))
	for i := range names {
		cols[i] = models.Column{Name: names[i], Type: types[i]}
	}
	if rows == nil {
		rows = [][]interface{}{}
	}
	return models.Dataset{Columns: cols, Rows: rows}
}

//nolint:funlen // one literal per report
func sampleFor(id string) models.Dataset {
	switch id {
	case "executive.key_metrics":
		return sample(
			[]string{"on_time_delivery_rate", "avg_rating", "total_revenue", "active_customers", "total_orders"},
			[]string{"DOUBLE", "DOUBLE", "DOUBLE", "BIGINT", "BIGINT"},
			[]interface{}{87.3, 4.2, 125000.50, int64(45123), int64(78456)},
		)
	case "executive.daily_trends":
		return sample(
			[]string{"date_value", "daily_orders", "daily_revenue", "daily_avg_rating", "daily_on_time_rate"},
			[]string{"DATE", "BIGINT", "DOUBLE", "DOUBLE", "DOUBLE"},
			[]interface{}{"2026-08-01", int64(112), 5630.20, 4.1, 88.0},
			[]interface{}{"2026-08-02", int64(124), 6110.75, 4.3, 90.5},
			[]interface{}{"2026-08-03", int64(98), 4975.00, 4.0, 86.2},
		)
	case "executive.geographic_performance":
		return sample(
			[]string{"customer_state", "order_count", "avg_rating", "on_time_rate", "total_revenue"},
			[]string{"VARCHAR", "BIGINT", "DOUBLE", "DOUBLE", "DOUBLE"},
			[]interface{}{"SP", int64(31245), 4.2, 91.1, 48230.10},
			[]interface{}{"RJ", int64(9871), 4.0, 84.7, 15987.40},
			[]interface{}{"MG", int64(8652), 4.3, 89.9, 13020.00},
		)
	case "delivery.delivery_metrics":
		return sample(
			[]string{"total_orders", "on_time_orders", "on_time_percentage", "avg_delivery_days", "avg_delay_days"},
			[]string{"BIGINT", "BIGINT", "DOUBLE", "DOUBLE", "DOUBLE"},
			[]interface{}{int64(66432), int64(58011), 87.32, 12.1, -10.9},
		)
	case "delivery.delivery_by_state":
		return sample(
			[]string{"customer_state", "seller_state", "order_count", "on_time_rate", "avg_delivery_days"},
			[]string{"VARCHAR", "VARCHAR", "BIGINT", "DOUBLE", "DOUBLE"},
			[]interface{}{"SP", "SP", int64(20110), 93.4, 8.2},
			[]interface{}{"RJ", "SP", int64(7121), 85.1, 12.9},
		)
	case "delivery.delivery_time_distribution":
		return sample(
			[]string{"delivery_time_bucket", "order_count", "percentage"},
			[]string{"VARCHAR", "BIGINT", "DOUBLE"},
			[]interface{}{"1-7 days", int64(18344), 27.6},
			[]interface{}{"8-14 days", int64(27001), 40.6},
			[]interface{}{"15-21 days", int64(12110), 18.2},
			[]interface{}{"22-30 days", int64(5944), 8.9},
			[]interface{}{"30+ days", int64(3033), 4.6},
		)
	case "satisfaction.rating_analysis":
		return sample(
			[]string{"review_score", "review_count", "percentage", "on_time_rate"},
			[]string{"BIGINT", "BIGINT", "DOUBLE", "DOUBLE"},
			[]interface{}{int64(1), int64(4021), 6.1, 54.2},
			[]interface{}{int64(3), int64(5430), 8.2, 81.0},
			[]interface{}{int64(5), int64(38110), 57.7, 93.8},
		)
	case "satisfaction.satisfaction_vs_delivery":
		return sample(
			[]string{"delivery_status", "avg_rating", "review_count", "positive_reviews", "negative_reviews"},
			[]string{"VARCHAR", "DOUBLE", "BIGINT", "BIGINT", "BIGINT"},
			[]interface{}{"On Time", 4.3, int64(57120), int64(46110), int64(4233)},
			[]interface{}{"Delayed", 2.6, int64(9312), int64(2871), int64(4705)},
		)
	case "satisfaction.category_satisfaction":
		return sample(
			[]string{"category", "avg_rating", "review_count", "on_time_rate"},
			[]string{"VARCHAR", "DOUBLE", "BIGINT", "DOUBLE"},
			[]interface{}{"books_general_interest", 4.5, int64(521), 92.0},
			[]interface{}{"health_beauty", 4.2, int64(8921), 89.3},
		)
	case "product.weight_impact":
		return sample(
			[]string{"weight_category", "order_count", "avg_delivery_days", "avg_rating", "on_time_rate"},
			[]string{"VARCHAR", "BIGINT", "DOUBLE", "DOUBLE", "DOUBLE"},
			[]interface{}{"0-500g", int64(30122), 11.2, 4.2, 89.6},
			[]interface{}{"5kg+", int64(4119), 16.8, 3.9, 80.1},
		)
	case "product.category_performance":
		return sample(
			[]string{"category", "order_count", "total_revenue", "avg_price", "avg_weight", "avg_rating", "on_time_rate"},
			[]string{"VARCHAR", "BIGINT", "DOUBLE", "DOUBLE", "DOUBLE", "DOUBLE", "DOUBLE"},
			[]interface{}{"bed_bath_table", int64(9912), 102033.50, 93.2, 1800.5, 3.9, 86.1},
			[]interface{}{"watches_gifts", int64(5311), 120110.90, 201.1, 420.0, 4.0, 90.2},
		)
	case "payment.payment_method_analysis":
		return sample(
			[]string{"payment_type", "order_count", "total_value", "avg_order_value", "avg_installments", "avg_rating"},
			[]string{"VARCHAR", "BIGINT", "DOUBLE", "DOUBLE", "DOUBLE", "DOUBLE"},
			[]interface{}{"credit_card", int64(51102), 7810221.40, 152.8, 3.5, 4.1},
			[]interface{}{"boleto", int64(13110), 1622110.00, 123.7, 1.0, 4.2},
		)
	case "payment.installment_analysis":
		return sample(
			[]string{"payment_installments", "order_count", "avg_order_value", "avg_rating"},
			[]string{"BIGINT", "BIGINT", "DOUBLE", "DOUBLE"},
			[]interface{}{int64(1), int64(34110), 110.2, 4.2},
			[]interface{}{int64(3), int64(10221), 161.9, 4.1},
			[]interface{}{int64(10), int64(3110), 340.7, 3.9},
		)
	default:
		return sample([]string{}, []string{})
	}
}
