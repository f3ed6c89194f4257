// SPDX-License-Identifier: GPL-3.0-only

package purchase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
	"topup-server/commons"
	"topup-server/commons/carriers"
	"topup-server/metrics"
	"topup-server/models"
	"topup-server/phonecheck"
	"topup-server/pricing"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
)

var (
	ErrMissingField       = errors.New("network, phone number and purchase details are required")
	ErrInvalidPhone       = errors.New("phone number is not valid")
	ErrUnknownNetwork     = errors.New("unknown network provider")
	ErrUnknownTier        = errors.New("unknown airtime tier")
	ErrUnknownBundle      = errors.New("unknown data bundle")
	ErrWrongKind          = errors.New("request kind does not match the operation")
	ErrSubmissionInFlight = errors.New("a purchase is already in progress for this session")
	ErrDeclined           = errors.New("transaction was not successful")
)

// bookkeepingTimeout bounds the savings, history and event writes that
// follow an answered purchase. They no longer depend on the caller's context.
const bookkeepingTimeout = 10 * time.Second

type SavingsStore interface {
	AddSavings(ctx context.Context, sessionID uint, amount float64) (float64, error)
}

type Recorder interface {
	RecordTransaction(ctx context.Context, tx *models.Transaction) error
}

type Publisher interface {
	Publish(ctx context.Context, routingKey string, body []byte) error
}

type SubmitterConfig struct {
	Carriers  *carriers.LookupIndex
	Catalog   *pricing.Catalog
	Service   TransactionService
	Savings   SavingsStore
	Recorder  Recorder
	Publisher Publisher
}

type Submitter struct {
	carriers  *carriers.LookupIndex
	catalog   *pricing.Catalog
	service   TransactionService
	savings   SavingsStore
	recorder  Recorder
	publisher Publisher
	inflight  *cache.Cache
}

func NewSubmitter(cfg SubmitterConfig) *Submitter {
	return &Submitter{
		carriers:  cfg.Carriers,
		catalog:   cfg.Catalog,
		service:   cfg.Service,
		savings:   cfg.Savings,
		recorder:  cfg.Recorder,
		publisher: cfg.Publisher,
		inflight:  cache.New(cache.NoExpiration, 0),
	}
}

type Outcome struct {
	Result         *TransactionResult `json:"result"`
	Kind           Kind               `json:"kind"`
	OriginalAmount float64            `json:"original_amount"`
	Payable        float64            `json:"payable"`
	Savings        float64            `json:"savings"`
	TotalSavings   float64            `json:"total_savings"`
	Validation     phonecheck.Result  `json:"validation"`
}

func (o *Outcome) Notice() string {
	return o.Validation.Notice()
}

// Event is published for every successful purchase.
type Event struct {
	EventID         string    `json:"event_id"`
	Kind            Kind      `json:"kind"`
	Status          string    `json:"status"`
	TransactionID   string    `json:"transaction_id"`
	Reference       string    `json:"reference"`
	Network         string    `json:"network"`
	DetectedCarrier string    `json:"detected_carrier"`
	PhoneNumber     string    `json:"phone_number"`
	E164            string    `json:"e164,omitempty"`
	Amount          float64   `json:"amount"`
	OriginalAmount  float64   `json:"original_amount"`
	Savings         float64   `json:"savings"`
	SessionID       string    `json:"session_id"`
	OccurredAt      time.Time `json:"occurred_at"`
}

func (e Event) RoutingKey() string {
	return fmt.Sprintf("purchase.%s.%s", strings.ToLower(string(e.Kind)), e.Network)
}

// Submit validates req, forwards it to the transaction service and, on
// success, credits the session with the discount it received. Only one
// submission per session runs at a time.
func (s *Submitter) Submit(ctx context.Context, session *models.Session, req Request) (*Outcome, error) {
	if err := checkComplete(req); err != nil {
		return nil, err
	}
	if _, ok := s.carriers.Provider(req.Network); !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownNetwork, req.Network)
	}

	validation := phonecheck.Validate(s.carriers, req.PhoneNumber, req.Network)
	if !validation.Valid {
		return nil, fmt.Errorf("%w: %w", ErrInvalidPhone, validation.Err)
	}

	outcome := &Outcome{Kind: req.Kind, Validation: validation}
	var send Request
	switch req.Kind {
	case KindAirtime:
		tier, ok := s.catalog.Tier(req.Airtime.Tier)
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnknownTier, req.Airtime.Tier)
		}
		outcome.OriginalAmount = req.Airtime.Amount
		outcome.Payable = pricing.Payable(req.Airtime.Amount, tier.Discount)
		send = NewAirtimeRequest(req.Network, req.PhoneNumber, outcome.Payable, tier.Name)
	case KindBundle:
		bundle, ok := s.catalog.Bundle(req.Bundle.BundleID)
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnknownBundle, req.Bundle.BundleID)
		}
		outcome.OriginalAmount = bundle.OriginalPrice
		outcome.Payable = bundle.DiscountedPrice
		send = req
	default:
		return nil, fmt.Errorf("%w: %q", ErrWrongKind, req.Kind)
	}
	outcome.Savings = outcome.OriginalAmount - outcome.Payable

	// held until the service answers, however long that takes
	if err := s.inflight.Add(session.SessionID, struct{}{}, cache.NoExpiration); err != nil {
		return nil, ErrSubmissionInFlight
	}
	defer s.inflight.Delete(session.SessionID)

	var (
		result *TransactionResult
		err    error
	)
	if send.Kind == KindAirtime {
		result, err = s.service.PurchaseAirtime(ctx, send)
	} else {
		result, err = s.service.PurchaseBundle(ctx, send)
	}
	if err != nil {
		metrics.PurchaseCount.WithLabelValues(string(req.Kind), metrics.PurchaseStatusError).Inc()
		return nil, fmt.Errorf("transaction service: %w", err)
	}
	outcome.Result = result

	status := models.TransactionFailed
	if result.Status == StatusSuccess {
		status = models.TransactionSuccess
	}
	metrics.PurchaseCount.WithLabelValues(string(req.Kind), string(status)).Inc()

	// bookkeeping for an answered purchase outlives the caller
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), bookkeepingTimeout)
	defer cancel()

	outcome.TotalSavings = session.TotalSavings
	if status == models.TransactionSuccess {
		total, err := s.savings.AddSavings(ctx, session.ID, outcome.Savings)
		if err != nil {
			commons.Logger.Errorf("Failed to update savings for session %s: %v", session.SessionID, err)
			total = session.TotalSavings + outcome.Savings
		}
		outcome.TotalSavings = total
		metrics.SavingsTotal.Add(outcome.Savings)
	}

	s.record(ctx, session, send, outcome, status)
	if status != models.TransactionSuccess {
		return outcome, fmt.Errorf("%w: %s", ErrDeclined, result.Message)
	}
	s.publish(ctx, session, send, outcome)
	commons.Logger.Infof("Purchase %s completed: %s %s for %s", result.ID, req.Kind, req.Network, req.PhoneNumber)
	return outcome, nil
}

func checkComplete(req Request) error {
	if req.Network == "" || req.PhoneNumber == "" {
		return ErrMissingField
	}
	switch req.Kind {
	case KindAirtime:
		if req.Airtime.Amount <= 0 {
			return ErrMissingField
		}
	case KindBundle:
		if req.Bundle.BundleID == "" {
			return ErrMissingField
		}
	}
	return nil
}

func (s *Submitter) record(ctx context.Context, session *models.Session, req Request, o *Outcome, status models.TransactionStatus) {
	if s.recorder == nil {
		return
	}
	tx := &models.Transaction{
		TransactionID:  o.Result.ID,
		Reference:      o.Result.Reference,
		Kind:           req.Kind.model(),
		Status:         status,
		Network:        req.Network,
		PhoneNumber:    req.PhoneNumber,
		Amount:         o.Result.Amount,
		OriginalAmount: o.OriginalAmount,
		Savings:        o.Savings,
		SessionID:      session.ID,
	}
	if o.Validation.CarrierID != "" {
		tx.DetectedCarrier = &o.Validation.CarrierID
	}
	if o.Validation.E164 != "" {
		tx.E164 = &o.Validation.E164
	}
	if o.Result.Message != "" {
		tx.Message = &o.Result.Message
	}
	switch req.Kind {
	case KindAirtime:
		tier := req.Airtime.Tier
		tx.Tier = &tier
	case KindBundle:
		bundleID := req.Bundle.BundleID
		tx.BundleID = &bundleID
	}

	if err := s.recorder.RecordTransaction(ctx, tx); err != nil {
		commons.Logger.Errorf("Failed to record transaction %s: %v", o.Result.ID, err)
	}
}

func (s *Submitter) publish(ctx context.Context, session *models.Session, req Request, o *Outcome) {
	if s.publisher == nil {
		return
	}
	event := Event{
		EventID:         uuid.NewString(),
		Kind:            req.Kind,
		Status:          o.Result.Status,
		TransactionID:   o.Result.ID,
		Reference:       o.Result.Reference,
		Network:         req.Network,
		DetectedCarrier: o.Validation.CarrierID,
		PhoneNumber:     req.PhoneNumber,
		E164:            o.Validation.E164,
		Amount:          o.Result.Amount,
		OriginalAmount:  o.OriginalAmount,
		Savings:         o.Savings,
		SessionID:       session.SessionID,
		OccurredAt:      time.Now().UTC(),
	}
	body, err := json.Marshal(event)
	if err != nil {
		commons.Logger.Errorf("Failed to encode purchase event: %v", err)
		return
	}
	if err := s.publisher.Publish(ctx, event.RoutingKey(), body); err != nil {
		commons.Logger.Warnf("Failed to publish purchase event %s: %v", event.EventID, err)
	}
}
