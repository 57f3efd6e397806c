// CommerceLens - E-commerce Analytics Dashboard
// Copyright 2026 CommerceLens Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/commercelens/commercelens

// Package dataservice exposes one typed fetcher per dashboard report.
// Every fetcher routes through the cache manager with its declared data
// category, so pages never talk to the warehouse directly.
package dataservice

import (
	"context"

	"github.com/commercelens/commercelens/internal/cache"
	"github.com/commercelens/commercelens/internal/models"
	"github.com/commercelens/commercelens/internal/queries"
	"github.com/commercelens/commercelens/internal/warehouse"
)

// categoryFor assigns each report to a cache category. Aggregated metrics
// live longest, chart-shaped data shortest. Registration here is the single
// place a report's category is declared.
var categoryFor = map[string]cache.Category{
	"executive.key_metrics":               cache.CategoryMetrics,
	"executive.daily_trends":              cache.CategoryChart,
	"executive.geographic_performance":    cache.CategoryMetrics,
	"delivery.delivery_metrics":           cache.CategoryMetrics,
	"delivery.delivery_by_state":          cache.CategoryDetail,
	"delivery.delivery_time_distribution": cache.CategoryChart,
	"satisfaction.rating_analysis":        cache.CategoryChart,
	"satisfaction.satisfaction_vs_delivery": cache.CategoryChart,
	"satisfaction.category_satisfaction":  cache.CategoryDetail,
	"product.weight_impact":               cache.CategoryChart,
	"product.category_performance":        cache.CategoryDetail,
	"payment.payment_method_analysis":     cache.CategoryDetail,
	"payment.installment_analysis":        cache.CategoryChart,
}

// Service is the data access layer used by the API handlers.
type Service struct {
	cache *cache.Manager
	exec  warehouse.Executor
}

// New creates a data service backed by the given cache manager and
// warehouse executor.
func New(cacheMgr *cache.Manager, exec warehouse.Executor) *Service {
	return &Service{cache: cacheMgr, exec: exec}
}

func (s *Service) run(ctx context.Context, q queries.Query, args *cache.Args, params ...interface{}) (models.Dataset, error) {
	category, ok := categoryFor[q.ID()]
	if !ok {
		category = cache.CategoryDefault
	}
	return s.cache.Fetch(ctx, q.ID(), args, category, func(ctx context.Context) (models.Dataset, error) {
		return s.exec.Execute(ctx, q.SQL, params...)
	})
}

// Report fetches any registered report by area and name, binding the
// parameters its template declares. This is the generic path used by the
// data and export endpoints; the typed fetchers below are conveniences for
// programmatic callers.
func (s *Service) Report(ctx context.Context, area, name string, rng DateRange) (models.Dataset, error) {
	q, err := queries.Get(area, name)
	if err != nil {
		return models.Dataset{}, err
	}

	args := cache.NewArgs()
	params := make([]interface{}, 0, len(q.Params))
	for _, p := range q.Params {
		switch p {
		case "start_date":
			args.Kw("start_date", rng.Start)
			params = append(params, rng.Start)
		case "end_date":
			args.Kw("end_date", rng.End)
			params = append(params, rng.End)
		case "days":
			args.Kw("days", rng.Days)
			params = append(params, rng.Days)
		}
	}

	return s.run(ctx, q, args, params...)
}

// ExecutiveMetrics returns the 30-day key metrics row.
func (s *Service) ExecutiveMetrics(ctx context.Context) (models.Dataset, error) {
	q, err := queries.Get("executive", "key_metrics")
	if err != nil {
		return models.Dataset{}, err
	}
	return s.run(ctx, q, cache.NewArgs())
}

// DailyTrends returns per-day order/revenue/rating trends over the given
// number of days.
func (s *Service) DailyTrends(ctx context.Context, days int) (models.Dataset, error) {
	if days <= 0 {
		days = 90
	}
	q, err := queries.Get("executive", "daily_trends")
	if err != nil {
		return models.Dataset{}, err
	}
	return s.run(ctx, q, cache.NewArgs().Kw("days", days), days)
}

// GeographicPerformance returns per-state order metrics.
func (s *Service) GeographicPerformance(ctx context.Context) (models.Dataset, error) {
	q, err := queries.Get("executive", "geographic_performance")
	if err != nil {
		return models.Dataset{}, err
	}
	return s.run(ctx, q, cache.NewArgs())
}

// DeliveryMetrics returns delivery performance for a date range.
func (s *Service) DeliveryMetrics(ctx context.Context, rng DateRange) (models.Dataset, error) {
	return s.Report(ctx, "delivery", "delivery_metrics", rng)
}

// DeliveryByState returns delivery performance broken down by state pair.
func (s *Service) DeliveryByState(ctx context.Context, rng DateRange) (models.Dataset, error) {
	return s.Report(ctx, "delivery", "delivery_by_state", rng)
}

// DeliveryTimeDistribution returns delivery duration buckets.
func (s *Service) DeliveryTimeDistribution(ctx context.Context, rng DateRange) (models.Dataset, error) {
	return s.Report(ctx, "delivery", "delivery_time_distribution", rng)
}

// RatingAnalysis returns review score distribution.
func (s *Service) RatingAnalysis(ctx context.Context, rng DateRange) (models.Dataset, error) {
	return s.Report(ctx, "satisfaction", "rating_analysis", rng)
}

// SatisfactionVsDelivery compares ratings between on-time and delayed orders.
func (s *Service) SatisfactionVsDelivery(ctx context.Context, rng DateRange) (models.Dataset, error) {
	return s.Report(ctx, "satisfaction", "satisfaction_vs_delivery", rng)
}

// CategorySatisfaction returns per-category rating metrics.
func (s *Service) CategorySatisfaction(ctx context.Context, rng DateRange) (models.Dataset, error) {
	return s.Report(ctx, "satisfaction", "category_satisfaction", rng)
}

// WeightImpact returns delivery metrics bucketed by product weight.
func (s *Service) WeightImpact(ctx context.Context, rng DateRange) (models.Dataset, error) {
	return s.Report(ctx, "product", "weight_impact", rng)
}

// CategoryPerformance returns per-category sales metrics.
func (s *Service) CategoryPerformance(ctx context.Context, rng DateRange) (models.Dataset, error) {
	return s.Report(ctx, "product", "category_performance", rng)
}

// PaymentMethodAnalysis returns per-payment-type order metrics.
func (s *Service) PaymentMethodAnalysis(ctx context.Context, rng DateRange) (models.Dataset, error) {
	return s.Report(ctx, "payment", "payment_method_analysis", rng)
}

// InstallmentAnalysis returns order metrics by installment count.
func (s *Service) InstallmentAnalysis(ctx context.Context, rng DateRange) (models.Dataset, error) {
	return s.Report(ctx, "payment", "installment_analysis", rng)
}
