package deal

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

//nolint:gochecknoglobals
var (
	dealsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "guarantor_deals_created_total",
		Help: "Deals created by sellers.",
	})
	dealsJoined = promauto.NewCounter(prometheus.CounterOpts{
		Name: "guarantor_deals_joined_total",
		Help: "Deals joined by buyers.",
	})
	paymentsConfirmed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "guarantor_payments_confirmed_total",
		Help: "Payments confirmed by admins.",
	})
)
