package sandbox

import (
	"errors"
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/alexbotov/iyzipay-go/pkg/iyzipay"
)

var (
	ErrPaymentNotFound     = errors.New("payment not found")
	ErrTransactionNotFound = errors.New("payment transaction not found")
	ErrAlreadyCancelled    = errors.New("payment already cancelled")
	ErrRefundExceedsPaid   = errors.New("refund amount exceeds paid amount")
	ErrCardNotFound        = errors.New("card not found")
	ErrSubMerchantNotFound = errors.New("sub merchant not found")
	ErrSubMerchantExists   = errors.New("sub merchant already exists")
	ErrLinkNotFound        = errors.New("iyzilink product not found")
	ErrCheckoutNotFound    = errors.New("checkout form token not found")
)

type paymentRecord struct {
	payment   iyzipay.Payment
	cancelled bool
	pending   bool
	refunded  map[string]decimal.Decimal
}

type linkRecord struct {
	item    iyzipay.IyziLinkItem
	created time.Time
}

// Store keeps the sandbox's payments, cards, sellers and products in memory.
type Store struct {
	mu sync.RWMutex

	seq          int64
	payments     map[string]*paymentRecord
	transactions map[string]string
	cards        map[string][]iyzipay.Card
	checkouts    map[string]*iyzipay.CreateCheckoutFormInitializeRequest
	subMerchants map[string]*iyzipay.SubMerchant
	links        map[string]*linkRecord
}

// NewStore creates an empty store
func NewStore() *Store {
	return &Store{
		seq:          10000,
		payments:     make(map[string]*paymentRecord),
		transactions: make(map[string]string),
		cards:        make(map[string][]iyzipay.Card),
		checkouts:    make(map[string]*iyzipay.CreateCheckoutFormInitializeRequest),
		subMerchants: make(map[string]*iyzipay.SubMerchant),
		links:        make(map[string]*linkRecord),
	}
}

func clonePayment(p iyzipay.Payment) *iyzipay.Payment {
	p.PaymentItems = append([]iyzipay.PaymentItem(nil), p.PaymentItems...)
	return &p
}

// nextID must be called with mu held.
func (s *Store) nextID() string {
	s.seq++
	return strconv.FormatInt(s.seq, 10)
}

// SavePayment stores p, assigning payment and transaction ids.
func (s *Store) SavePayment(p *iyzipay.Payment, pending bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p.PaymentID = s.nextID()
	for i := range p.PaymentItems {
		p.PaymentItems[i].PaymentTransactionID = s.nextID()
		s.transactions[p.PaymentItems[i].PaymentTransactionID] = p.PaymentID
	}
	s.payments[p.PaymentID] = &paymentRecord{
		payment:  *clonePayment(*p),
		pending:  pending,
		refunded: make(map[string]decimal.Decimal),
	}
}

// Payment returns a copy of a stored payment.
func (s *Store) Payment(id string) (*iyzipay.Payment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.payments[id]
	if !ok {
		return nil, ErrPaymentNotFound
	}
	return clonePayment(rec.payment), nil
}

// PaymentByConversation finds the payment created with conversationID.
func (s *Store) PaymentByConversation(conversationID string) (*iyzipay.Payment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, rec := range s.payments {
		if rec.payment.ConversationID == conversationID {
			return clonePayment(rec.payment), nil
		}
	}
	return nil, ErrPaymentNotFound
}

// CompleteThreeds turns a pending 3DS payment into an authorized one.
func (s *Store) CompleteThreeds(id string) (*iyzipay.Payment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.payments[id]
	if !ok || !rec.pending {
		return nil, ErrPaymentNotFound
	}
	rec.pending = false
	rec.payment.PaymentStatus = "SUCCESS"
	rec.payment.Phase = "AUTH"
	return clonePayment(rec.payment), nil
}

// Cancel voids a payment.
func (s *Store) Cancel(id string) (*iyzipay.Payment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.payments[id]
	if !ok {
		return nil, ErrPaymentNotFound
	}
	if rec.cancelled {
		return nil, ErrAlreadyCancelled
	}
	rec.cancelled = true
	return clonePayment(rec.payment), nil
}

// Refund records a refund against a transaction and returns the owning
// payment id.
func (s *Store) Refund(transactionID string, amount decimal.Decimal) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	paymentID, ok := s.transactions[transactionID]
	if !ok {
		return "", ErrTransactionNotFound
	}
	rec := s.payments[paymentID]
	if rec.cancelled {
		return "", ErrAlreadyCancelled
	}

	for _, item := range rec.payment.PaymentItems {
		if item.PaymentTransactionID != transactionID {
			continue
		}
		total := rec.refunded[transactionID].Add(amount)
		if total.GreaterThan(item.PaidPrice) {
			return "", ErrRefundExceedsPaid
		}
		rec.refunded[transactionID] = total
		return paymentID, nil
	}
	return "", ErrTransactionNotFound
}

// UpdateItem applies fn to the payment item with the given transaction id.
func (s *Store) UpdateItem(transactionID string, fn func(*iyzipay.PaymentItem)) (*iyzipay.PaymentItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	paymentID, ok := s.transactions[transactionID]
	if !ok {
		return nil, ErrTransactionNotFound
	}
	rec := s.payments[paymentID]
	for i := range rec.payment.PaymentItems {
		if rec.payment.PaymentItems[i].PaymentTransactionID == transactionID {
			fn(&rec.payment.PaymentItems[i])
			item := rec.payment.PaymentItems[i]
			return &item, nil
		}
	}
	return nil, ErrTransactionNotFound
}

// SaveCard stores a card under its card user key.
func (s *Store) SaveCard(card iyzipay.Card) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cards[card.CardUserKey] = append(s.cards[card.CardUserKey], card)
}

// Card finds a stored card.
func (s *Store) Card(cardUserKey, cardToken string) (*iyzipay.Card, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, c := range s.cards[cardUserKey] {
		if c.CardToken == cardToken {
			card := c
			return &card, nil
		}
	}
	return nil, ErrCardNotFound
}

// DeleteCard removes a stored card.
func (s *Store) DeleteCard(cardUserKey, cardToken string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cards := s.cards[cardUserKey]
	for i, c := range cards {
		if c.CardToken == cardToken {
			s.cards[cardUserKey] = append(cards[:i:i], cards[i+1:]...)
			return nil
		}
	}
	return ErrCardNotFound
}

// Cards lists the cards of a card user.
func (s *Store) Cards(cardUserKey string) []iyzipay.Card {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]iyzipay.Card(nil), s.cards[cardUserKey]...)
}

// SaveCheckout remembers a checkout form until it is retrieved.
func (s *Store) SaveCheckout(token string, req *iyzipay.CreateCheckoutFormInitializeRequest) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.checkouts[token] = req
}

// TakeCheckout returns and forgets a checkout form.
func (s *Store) TakeCheckout(token string) (*iyzipay.CreateCheckoutFormInitializeRequest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	req, ok := s.checkouts[token]
	if !ok {
		return nil, ErrCheckoutNotFound
	}
	delete(s.checkouts, token)
	return req, nil
}

// SaveSubMerchant registers a seller, assigning its key.
func (s *Store) SaveSubMerchant(sm *iyzipay.SubMerchant) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.subMerchants[sm.SubMerchantExternalID]; ok {
		return ErrSubMerchantExists
	}
	sm.SubMerchantKey = "sm-" + s.nextID()
	stored := *sm
	s.subMerchants[sm.SubMerchantExternalID] = &stored
	return nil
}

// UpdateSubMerchant applies fn to the seller with the given key.
func (s *Store) UpdateSubMerchant(key string, fn func(*iyzipay.SubMerchant)) (*iyzipay.SubMerchant, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, sm := range s.subMerchants {
		if sm.SubMerchantKey == key {
			fn(sm)
			out := *sm
			return &out, nil
		}
	}
	return nil, ErrSubMerchantNotFound
}

// SubMerchant finds a seller by external id.
func (s *Store) SubMerchant(externalID string) (*iyzipay.SubMerchant, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sm, ok := s.subMerchants[externalID]
	if !ok {
		return nil, ErrSubMerchantNotFound
	}
	out := *sm
	return &out, nil
}

// SaveLink stores or replaces an iyzilink product.
func (s *Store) SaveLink(item iyzipay.IyziLinkItem, now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if rec, ok := s.links[item.Token]; ok {
		rec.item = item
		return
	}
	s.links[item.Token] = &linkRecord{item: item, created: now}
}

// Link returns a product by token.
func (s *Store) Link(token string) (*iyzipay.IyziLinkItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.links[token]
	if !ok {
		return nil, ErrLinkNotFound
	}
	item := rec.item
	return &item, nil
}

// DeleteLink removes a product and returns it marked as deleted.
func (s *Store) DeleteLink(token string) (*iyzipay.IyziLinkItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.links[token]
	if !ok {
		return nil, ErrLinkNotFound
	}
	delete(s.links, token)
	item := rec.item
	item.Status = iyzipay.IyziLinkStatusDeleted
	return &item, nil
}

// Links returns one page of products in creation order. page is 1-based.
func (s *Store) Links(page, count int) iyzipay.IyziLinkPaging {
	s.mu.RLock()
	defer s.mu.RUnlock()

	recs := make([]*linkRecord, 0, len(s.links))
	for _, rec := range s.links {
		recs = append(recs, rec)
	}
	sort.Slice(recs, func(i, j int) bool {
		if recs[i].created.Equal(recs[j].created) {
			return recs[i].item.Token < recs[j].item.Token
		}
		return recs[i].created.Before(recs[j].created)
	})

	paging := iyzipay.IyziLinkPaging{
		Items:       []iyzipay.IyziLinkItem{},
		TotalCount:  int64(len(recs)),
		CurrentPage: page,
		PageCount:   (len(recs) + count - 1) / count,
	}
	start := (page - 1) * count
	for i := start; i < len(recs) && i < start+count; i++ {
		paging.Items = append(paging.Items, recs[i].item)
	}
	return paging
}
