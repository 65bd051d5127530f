package usecase_test

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"stocklot/internal/application/usecase"
	companydom "stocklot/internal/domain/company"
	notifdom "stocklot/internal/domain/notification"
	offerdom "stocklot/internal/domain/offer"
	imgdom "stocklot/internal/domain/offerImage"
	purchasedom "stocklot/internal/domain/purchase"
	userdom "stocklot/internal/domain/user"
)

// memStore is the shared in-memory backend for all fake ports. A single
// mutex covers offers and purchases together so the inventory tx fake can
// mirror the all-or-nothing semantics of the real backend transaction.
type memStore struct {
	mu sync.Mutex

	offers    map[string]offerdom.Offer
	purchases map[string]purchasedom.Purchase
	users     map[string]userdom.User
	notifs    map[string]notifdom.Notification

	notifOrder []string

	offerSeq    int64
	purchaseSeq int
	notifSeq    int
}

func newMemStore() *memStore {
	return &memStore{
		offers:    map[string]offerdom.Offer{},
		purchases: map[string]purchasedom.Purchase{},
		users:     map[string]userdom.User{},
		notifs:    map[string]notifdom.Notification{},
	}
}

func (s *memStore) offer(id string) (offerdom.Offer, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	o, ok := s.offers[id]
	return o, ok
}

func (s *memStore) purchase(id string) (purchasedom.Purchase, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.purchases[id]
	return p, ok
}

func (s *memStore) user(uid string) (userdom.User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[uid]
	return u, ok
}

// ========================================
// Offer repository fake
// ========================================

type fakeOfferRepo struct {
	s *memStore

	// failUpdate forces the next Update call to fail.
	failUpdate error
}

var _ offerdom.RepositoryPort = (*fakeOfferRepo)(nil)

func (r *fakeOfferRepo) Create(ctx context.Context, o offerdom.Offer) (offerdom.Offer, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.offerSeq++
	o.ID = fmt.Sprintf("of-%d", r.s.offerSeq)
	o.ReadableID = offerdom.FormatReadableID(r.s.offerSeq)
	r.s.offers[o.ID] = o
	return o, nil
}

func (r *fakeOfferRepo) GetByID(ctx context.Context, id string) (offerdom.Offer, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	o, ok := r.s.offers[id]
	if !ok {
		return offerdom.Offer{}, offerdom.ErrNotFound
	}
	return o, nil
}

func (r *fakeOfferRepo) Update(ctx context.Context, id string, patch offerdom.OfferPatch) (offerdom.Offer, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.failUpdate != nil {
		err := r.failUpdate
		r.failUpdate = nil
		return offerdom.Offer{}, err
	}
	o, ok := r.s.offers[id]
	if !ok {
		return offerdom.Offer{}, offerdom.ErrNotFound
	}
	if patch.Title != nil {
		o.Title = *patch.Title
	}
	if patch.Description != nil {
		o.Description = *patch.Description
	}
	if patch.Category != nil {
		o.Category = *patch.Category
	}
	if patch.UnitPrice != nil {
		o.UnitPrice = *patch.UnitPrice
	}
	if patch.Quantity != nil {
		o.Quantity = *patch.Quantity
		// The Firestore adapter flips a zero-quantity offer to sold unless
		// the patch carries its own status.
		if o.Quantity == 0 && patch.Status == nil {
			o.Status = offerdom.StatusSold
		}
	}
	if patch.Status != nil {
		o.Status = *patch.Status
	}
	if patch.Deleted != nil {
		o.Deleted = *patch.Deleted
	}
	if patch.ImageURLs != nil {
		o.ImageURLs = *patch.ImageURLs
	}
	o.UpdatedAt = time.Now().UTC()
	r.s.offers[id] = o
	return o, nil
}

func (r *fakeOfferRepo) List(ctx context.Context, filter offerdom.Filter, page offerdom.Page) (offerdom.PageResult, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var items []offerdom.Offer
	for i := int64(1); i <= r.s.offerSeq; i++ {
		o, ok := r.s.offers[fmt.Sprintf("of-%d", i)]
		if !ok {
			continue
		}
		if o.Deleted && !filter.IncludeDeleted {
			continue
		}
		if filter.SellerID != nil && o.SellerID != *filter.SellerID {
			continue
		}
		if filter.Status != nil && o.Status != *filter.Status {
			continue
		}
		if filter.Category != nil && o.Category != *filter.Category {
			continue
		}
		items = append(items, o)
	}

	return offerdom.PageResult{
		Items:      items,
		TotalCount: len(items),
		TotalPages: 1,
		Page:       1,
		PerPage:    len(items),
	}, nil
}

func (r *fakeOfferRepo) SoftDelete(ctx context.Context, id string) (offerdom.Offer, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	o, ok := r.s.offers[id]
	if !ok {
		return offerdom.Offer{}, offerdom.ErrNotFound
	}
	o.Deleted = true
	o.UpdatedAt = time.Now().UTC()
	r.s.offers[id] = o
	return o, nil
}

// ========================================
// Purchase repository fake
// ========================================

type fakePurchaseRepo struct {
	s *memStore
}

var _ purchasedom.RepositoryPort = (*fakePurchaseRepo)(nil)

func (r *fakePurchaseRepo) Create(ctx context.Context, p purchasedom.Purchase) (purchasedom.Purchase, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.purchaseSeq++
	p.ID = fmt.Sprintf("pur-%d", r.s.purchaseSeq)
	r.s.purchases[p.ID] = p
	return p, nil
}

func (r *fakePurchaseRepo) GetByID(ctx context.Context, id string) (purchasedom.Purchase, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.purchases[id]
	if !ok {
		return purchasedom.Purchase{}, purchasedom.ErrNotFound
	}
	return p, nil
}

func (r *fakePurchaseRepo) UpdateStatus(ctx context.Context, id string, patch purchasedom.StatusPatch) (purchasedom.Purchase, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.purchases[id]
	if !ok {
		return purchasedom.Purchase{}, purchasedom.ErrNotFound
	}
	if patch.Status != nil {
		p.Status = *patch.Status
	}
	if patch.ApprovalStatus != nil {
		p.ApprovalStatus = *patch.ApprovalStatus
	}
	if patch.ShippingProofURL != nil {
		p.ShippingProofURL = *patch.ShippingProofURL
	}
	if patch.UpdatedAt != nil {
		p.UpdatedAt = *patch.UpdatedAt
	}
	r.s.purchases[id] = p
	return p, nil
}

func (r *fakePurchaseRepo) List(ctx context.Context, filter purchasedom.Filter) ([]purchasedom.Purchase, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var out []purchasedom.Purchase
	for i := 1; i <= r.s.purchaseSeq; i++ {
		p, ok := r.s.purchases[fmt.Sprintf("pur-%d", i)]
		if !ok {
			continue
		}
		if filter.BuyerID != nil && p.BuyerID != *filter.BuyerID {
			continue
		}
		if filter.SellerID != nil && p.SellerID != *filter.SellerID {
			continue
		}
		if filter.OfferID != nil && p.OfferID != *filter.OfferID {
			continue
		}
		if filter.Status != nil && p.Status != *filter.Status {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

// ========================================
// Inventory tx fake
// ========================================

// fakeInventoryTx applies the reconcile/restore mutations under the store
// mutex, mirroring the atomicity the Firestore transaction provides.
type fakeInventoryTx struct {
	s *memStore

	failReconcile error
	failRestore   error
}

var _ purchasedom.InventoryTxPort = (*fakeInventoryTx)(nil)

func (f *fakeInventoryTx) Reconcile(ctx context.Context, purchaseID string) (purchasedom.ReconcileOutcome, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()

	if f.failReconcile != nil {
		return purchasedom.ReconcileOutcome{}, f.failReconcile
	}

	p, ok := f.s.purchases[purchaseID]
	if !ok {
		return purchasedom.ReconcileOutcome{}, purchasedom.ErrNotFound
	}
	o, ok := f.s.offers[p.OfferID]
	if !ok {
		return purchasedom.ReconcileOutcome{}, offerdom.ErrNotFound
	}

	if p.Reconciled {
		return purchasedom.ReconcileOutcome{
			Applied:           false,
			OfferID:           o.ID,
			NewQuantity:       o.Quantity,
			NewStatus:         string(o.Status),
			PurchasedQuantity: p.Quantity,
			SellerID:          p.SellerID,
			BuyerID:           p.BuyerID,
		}, nil
	}

	if o.Quantity < p.Quantity {
		return purchasedom.ReconcileOutcome{}, offerdom.ErrInsufficientQuantity
	}

	o.Quantity -= p.Quantity
	if o.Quantity == 0 {
		o.Status = offerdom.StatusSold
	}
	p.Reconciled = true

	f.s.offers[o.ID] = o
	f.s.purchases[p.ID] = p

	return purchasedom.ReconcileOutcome{
		Applied:           true,
		OfferID:           o.ID,
		NewQuantity:       o.Quantity,
		NewStatus:         string(o.Status),
		PurchasedQuantity: p.Quantity,
		SellerID:          p.SellerID,
		BuyerID:           p.BuyerID,
	}, nil
}

func (f *fakeInventoryTx) Restore(ctx context.Context, purchaseID string) (purchasedom.ReconcileOutcome, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()

	if f.failRestore != nil {
		return purchasedom.ReconcileOutcome{}, f.failRestore
	}

	p, ok := f.s.purchases[purchaseID]
	if !ok {
		return purchasedom.ReconcileOutcome{}, purchasedom.ErrNotFound
	}
	o, ok := f.s.offers[p.OfferID]
	if !ok {
		return purchasedom.ReconcileOutcome{}, offerdom.ErrNotFound
	}

	if !p.Reconciled {
		return purchasedom.ReconcileOutcome{
			Applied:           false,
			OfferID:           o.ID,
			NewQuantity:       o.Quantity,
			NewStatus:         string(o.Status),
			PurchasedQuantity: p.Quantity,
			SellerID:          p.SellerID,
			BuyerID:           p.BuyerID,
		}, nil
	}

	o.Quantity += p.Quantity
	o.Status = offerdom.StatusActive
	o.Deleted = false
	p.Reconciled = false

	f.s.offers[o.ID] = o
	f.s.purchases[p.ID] = p

	return purchasedom.ReconcileOutcome{
		Applied:           true,
		OfferID:           o.ID,
		NewQuantity:       o.Quantity,
		NewStatus:         string(o.Status),
		PurchasedQuantity: p.Quantity,
		SellerID:          p.SellerID,
		BuyerID:           p.BuyerID,
	}, nil
}

// ========================================
// User repository fake
// ========================================

type fakeUserRepo struct {
	s *memStore
}

var _ userdom.RepositoryPort = (*fakeUserRepo)(nil)

func (r *fakeUserRepo) GetByUID(ctx context.Context, uid string) (userdom.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.users[uid]
	if !ok {
		return userdom.User{}, userdom.ErrNotFound
	}
	return u, nil
}

func (r *fakeUserRepo) Upsert(ctx context.Context, u userdom.User) (userdom.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cur, ok := r.s.users[u.UID]
	if ok {
		u.Watchlist = cur.Watchlist
		u.CreatedAt = cur.CreatedAt
	} else {
		u.Watchlist = []string{}
		u.CreatedAt = u.UpdatedAt
	}
	r.s.users[u.UID] = u
	return u, nil
}

func (r *fakeUserRepo) AddToWatchlist(ctx context.Context, uid, offerID string) (userdom.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.users[uid]
	if !ok {
		return userdom.User{}, userdom.ErrNotFound
	}
	if !u.OnWatchlist(offerID) {
		u.Watchlist = append(u.Watchlist, offerID)
	}
	r.s.users[uid] = u
	return u, nil
}

func (r *fakeUserRepo) RemoveFromWatchlist(ctx context.Context, uid, offerID string) (userdom.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.users[uid]
	if !ok {
		return userdom.User{}, userdom.ErrNotFound
	}
	u.Watchlist = removeString(u.Watchlist, offerID)
	r.s.users[uid] = u
	return u, nil
}

func (r *fakeUserRepo) ListUIDsWatching(ctx context.Context, offerID string) ([]string, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var uids []string
	for uid, u := range r.s.users {
		if u.OnWatchlist(offerID) {
			uids = append(uids, uid)
		}
	}
	return uids, nil
}

func (r *fakeUserRepo) EvictFromWatchlists(ctx context.Context, offerID string, uids []string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, uid := range uids {
		u, ok := r.s.users[uid]
		if !ok {
			continue
		}
		u.Watchlist = removeString(u.Watchlist, offerID)
		r.s.users[uid] = u
	}
	return nil
}

func removeString(in []string, s string) []string {
	out := make([]string, 0, len(in))
	for _, v := range in {
		if v != s {
			out = append(out, v)
		}
	}
	return out
}

// ========================================
// Notification repository fake
// ========================================

type fakeNotificationRepo struct {
	s *memStore

	// failCreates makes the next N Create calls fail, for retry tests.
	failCreates int
	createCalls int
}

var _ notifdom.RepositoryPort = (*fakeNotificationRepo)(nil)

func (r *fakeNotificationRepo) Create(ctx context.Context, n notifdom.Notification) (notifdom.Notification, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.createCalls++
	if r.failCreates > 0 {
		r.failCreates--
		return notifdom.Notification{}, fmt.Errorf("notification store unavailable")
	}
	r.s.notifSeq++
	n.ID = fmt.Sprintf("ntf-%d", r.s.notifSeq)
	r.s.notifs[n.ID] = n
	r.s.notifOrder = append(r.s.notifOrder, n.ID)
	return n, nil
}

func (r *fakeNotificationRepo) GetByID(ctx context.Context, id string) (notifdom.Notification, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	n, ok := r.s.notifs[id]
	if !ok {
		return notifdom.Notification{}, notifdom.ErrNotFound
	}
	return n, nil
}

func (r *fakeNotificationRepo) ListByUser(ctx context.Context, uid string, limit int) ([]notifdom.Notification, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []notifdom.Notification
	for i := len(r.s.notifOrder) - 1; i >= 0 && len(out) < limit; i-- {
		n := r.s.notifs[r.s.notifOrder[i]]
		if n.UserID == uid {
			out = append(out, n)
		}
	}
	return out, nil
}

func (r *fakeNotificationRepo) MarkRead(ctx context.Context, id string) (notifdom.Notification, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	n, ok := r.s.notifs[id]
	if !ok {
		return notifdom.Notification{}, notifdom.ErrNotFound
	}
	n.IsRead = true
	r.s.notifs[id] = n
	return n, nil
}

func (r *fakeNotificationRepo) forUser(uid string) []notifdom.Notification {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []notifdom.Notification
	for _, id := range r.s.notifOrder {
		if n := r.s.notifs[id]; n.UserID == uid {
			out = append(out, n)
		}
	}
	return out
}

// ========================================
// Image repository fake
// ========================================

type fakeImageRepo struct {
	mu       sync.Mutex
	uploaded []imgdom.OfferImage
	deleted  []string
	seq      int
}

var _ imgdom.RepositoryPort = (*fakeImageRepo)(nil)

func (r *fakeImageRepo) Upload(ctx context.Context, img imgdom.OfferImage, data []byte) (imgdom.OfferImage, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	img.ID = fmt.Sprintf("img-%d", r.seq)
	path, err := imgdom.BuildObjectPath(img.OfferID, img.ID, img.ContentType)
	if err != nil {
		return imgdom.OfferImage{}, err
	}
	img.ObjectPath = path
	img.URL = "https://storage.example/" + path
	r.uploaded = append(r.uploaded, img)
	return img, nil
}

func (r *fakeImageRepo) Delete(ctx context.Context, objectPath string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.deleted = append(r.deleted, objectPath)
	return nil
}

// ========================================
// Company repository fake
// ========================================

type fakeCompanyRepo struct {
	mu        sync.Mutex
	companies map[string]companydom.Company
	order     []string
	seq       int
}

var _ companydom.RepositoryPort = (*fakeCompanyRepo)(nil)

func newFakeCompanyRepo() *fakeCompanyRepo {
	return &fakeCompanyRepo{companies: map[string]companydom.Company{}}
}

func (r *fakeCompanyRepo) Create(ctx context.Context, c companydom.Company) (companydom.Company, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	c.ID = fmt.Sprintf("co-%d", r.seq)
	r.companies[c.ID] = c
	r.order = append(r.order, c.ID)
	return c, nil
}

func (r *fakeCompanyRepo) GetByID(ctx context.Context, id string) (companydom.Company, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.companies[id]
	if !ok {
		return companydom.Company{}, companydom.ErrNotFound
	}
	return c, nil
}

func (r *fakeCompanyRepo) Update(ctx context.Context, id string, patch companydom.CompanyPatch) (companydom.Company, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.companies[id]
	if !ok {
		return companydom.Company{}, companydom.ErrNotFound
	}
	if patch.Name != nil {
		c.Name = *patch.Name
	}
	if patch.Address != nil {
		c.Address = *patch.Address
	}
	if patch.ContactEmail != nil {
		c.ContactEmail = *patch.ContactEmail
	}
	if patch.LogoURL != nil {
		c.LogoURL = *patch.LogoURL
	}
	if patch.Verified != nil {
		c.Verified = *patch.Verified
	}
	c.UpdatedAt = time.Now().UTC()
	r.companies[id] = c
	return c, nil
}

func (r *fakeCompanyRepo) List(ctx context.Context) ([]companydom.Company, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]companydom.Company, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.companies[id])
	}
	return out, nil
}

// ========================================
// Ledger / notifier / mailer fakes
// ========================================

type fakeLedger struct {
	mu      sync.Mutex
	entries []usecase.LedgerEntry
}

var _ usecase.PurchaseLedgerPort = (*fakeLedger)(nil)

func (l *fakeLedger) Record(ctx context.Context, e usecase.LedgerEntry) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = append(l.entries, e)
	return nil
}

func (l *fakeLedger) ListRecent(ctx context.Context, limit int) ([]usecase.LedgerEntry, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]usecase.LedgerEntry, 0, limit)
	for i := len(l.entries) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, l.entries[i])
	}
	return out, nil
}

func (l *fakeLedger) all() []usecase.LedgerEntry {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]usecase.LedgerEntry{}, l.entries...)
}

// recordingNotifier delivers synchronously to the notification usecase and
// keeps the inputs for assertions.
type recordingNotifier struct {
	mu     sync.Mutex
	inputs []usecase.EmitInput
	uc     *usecase.NotificationUsecase
}

var _ usecase.Notifier = (*recordingNotifier)(nil)

func (n *recordingNotifier) Notify(in usecase.EmitInput) {
	n.mu.Lock()
	n.inputs = append(n.inputs, in)
	n.mu.Unlock()
	if n.uc != nil {
		_, _ = n.uc.Emit(context.Background(), in)
	}
}

func (n *recordingNotifier) byType(typ notifdom.Type) []usecase.EmitInput {
	n.mu.Lock()
	defer n.mu.Unlock()
	var out []usecase.EmitInput
	for _, in := range n.inputs {
		if in.Type == typ {
			out = append(out, in)
		}
	}
	return out
}

type fakeMailer struct {
	mu    sync.Mutex
	sent  []string // "to|subject"
	fails int
}

var _ usecase.NotificationMailSender = (*fakeMailer)(nil)

func (m *fakeMailer) SendNotificationEmail(ctx context.Context, toEmail, subject, body string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fails > 0 {
		m.fails--
		return fmt.Errorf("smtp unavailable")
	}
	m.sent = append(m.sent, toEmail+"|"+subject)
	return nil
}

func (m *fakeMailer) sentCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sent)
}

// ========================================
// Environment wiring
// ========================================

// env wires the full usecase graph over the in-memory fakes, the same
// shape the DI container builds in production.
type env struct {
	store *memStore

	offers    *fakeOfferRepo
	purchases *fakePurchaseRepo
	users     *fakeUserRepo
	notifs    *fakeNotificationRepo
	images    *fakeImageRepo
	invTx     *fakeInventoryTx
	ledger    *fakeLedger
	notifier  *recordingNotifier

	notificationUC *usecase.NotificationUsecase
	watchlistUC    *usecase.WatchlistUsecase
	reconcileUC    *usecase.ReconcileUsecase
	restoreUC      *usecase.RestoreUsecase
	offerUC        *usecase.OfferUsecase
	purchaseUC     *usecase.PurchaseUsecase
}

func newTestEnv() *env {
	s := newMemStore()

	e := &env{
		store:     s,
		offers:    &fakeOfferRepo{s: s},
		purchases: &fakePurchaseRepo{s: s},
		users:     &fakeUserRepo{s: s},
		notifs:    &fakeNotificationRepo{s: s},
		images:    &fakeImageRepo{},
		invTx:     &fakeInventoryTx{s: s},
		ledger:    &fakeLedger{},
	}

	e.notificationUC = usecase.NewNotificationUsecase(e.notifs, nil)
	e.notifier = &recordingNotifier{uc: e.notificationUC}
	e.watchlistUC = usecase.NewWatchlistUsecase(e.users, e.offers)
	e.reconcileUC = usecase.NewReconcileUsecase(e.invTx, e.watchlistUC, e.notifier)
	e.restoreUC = usecase.NewRestoreUsecase(e.invTx, e.watchlistUC)
	e.offerUC = usecase.NewOfferUsecase(e.offers, e.images, e.watchlistUC)
	e.purchaseUC = usecase.NewPurchaseUsecase(e.purchases, e.offers, e.reconcileUC, e.restoreUC, e.notifier, e.ledger)

	return e
}

func (e *env) seedUser(t *testing.T, uid, email string) userdom.User {
	t.Helper()
	u, err := e.users.Upsert(context.Background(), userdom.User{
		UID:       uid,
		Email:     email,
		UpdatedAt: time.Now().UTC(),
	})
	if err != nil {
		t.Fatalf("seed user %s: %v", uid, err)
	}
	return u
}

func (e *env) seedOffer(t *testing.T, sellerID string, quantity, unitPrice int) offerdom.Offer {
	t.Helper()
	o, err := e.offerUC.Create(context.Background(), usecase.CreateOfferInput{
		SellerID:  sellerID,
		Title:     "Pallet of winter jackets",
		Category:  "apparel",
		UnitPrice: unitPrice,
		Quantity:  quantity,
	})
	if err != nil {
		t.Fatalf("seed offer: %v", err)
	}
	return o
}

func (e *env) watch(t *testing.T, uid, offerID string) {
	t.Helper()
	if _, err := e.watchlistUC.Add(context.Background(), uid, offerID); err != nil {
		t.Fatalf("watch %s -> %s: %v", uid, offerID, err)
	}
}
