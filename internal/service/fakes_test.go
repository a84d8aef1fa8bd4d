package service_test

import (
	"context"
	"time"

	"github.com/IngMapache-Coder/Sistema-POS-Mar-de-Sabores/internal/model"
	"github.com/IngMapache-Coder/Sistema-POS-Mar-de-Sabores/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// In-memory repositories. DB() returns nil so services run their transaction
// bodies directly against these fakes.

// ── Ledger ───────────────────────────────────────────────────────────────────

type fakeLedgerRepo struct {
	movements []model.LedgerMovement
}

func (r *fakeLedgerRepo) DB() *gorm.DB { return nil }

func (r *fakeLedgerRepo) Create(_ context.Context, _ *gorm.DB, m *model.LedgerMovement) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	if m.CreatedAt.IsZero() {
		m.CreatedAt = time.Now()
	}
	r.movements = append(r.movements, *m)
	return nil
}

func (r *fakeLedgerRepo) List(_ context.Context) ([]model.LedgerMovement, error) {
	out := make([]model.LedgerMovement, len(r.movements))
	copy(out, r.movements)
	return out, nil
}

func (r *fakeLedgerRepo) Delete(_ context.Context, id uuid.UUID) error {
	for i := range r.movements {
		if r.movements[i].ID == id {
			r.movements = append(r.movements[:i], r.movements[i+1:]...)
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

// balance folds the fake's movements for one account.
func (r *fakeLedgerRepo) balance(account string) decimal.Decimal {
	total := decimal.Zero
	for i := range r.movements {
		if r.movements[i].Account == account {
			total = total.Add(r.movements[i].Signed())
		}
	}
	return total
}

var _ repository.LedgerRepository = (*fakeLedgerRepo)(nil)

// ── Closures ─────────────────────────────────────────────────────────────────

type fakeClosureRepo struct {
	closures map[string]*model.DailyClosure
	// failNextCreate simulates losing the unique-index race: the next Create
	// reports a duplicate without inserting. If raceWinner is set, it lands
	// in the store first, as the concurrent winner's committed row.
	failNextCreate bool
	raceWinner     *model.DailyClosure
}

func newFakeClosureRepo() *fakeClosureRepo {
	return &fakeClosureRepo{closures: make(map[string]*model.DailyClosure)}
}

func (r *fakeClosureRepo) DB() *gorm.DB { return nil }

func (r *fakeClosureRepo) Create(_ context.Context, _ *gorm.DB, c *model.DailyClosure) error {
	if r.failNextCreate {
		r.failNextCreate = false
		if r.raceWinner != nil {
			r.closures[r.raceWinner.Date] = r.raceWinner
		}
		return gorm.ErrDuplicatedKey
	}
	if _, exists := r.closures[c.Date]; exists {
		return gorm.ErrDuplicatedKey
	}
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	c.CreatedAt = time.Now()
	cp := *c
	r.closures[c.Date] = &cp
	return nil
}

func (r *fakeClosureRepo) FindByDate(_ context.Context, date string) (*model.DailyClosure, error) {
	c, ok := r.closures[date]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *c
	return &cp, nil
}

func (r *fakeClosureRepo) ExistsForDate(_ context.Context, date string) (bool, error) {
	_, ok := r.closures[date]
	return ok, nil
}

func (r *fakeClosureRepo) DeleteByDate(_ context.Context, _ *gorm.DB, date string) error {
	delete(r.closures, date)
	return nil
}

func (r *fakeClosureRepo) List(_ context.Context) ([]model.DailyClosure, error) {
	out := make([]model.DailyClosure, 0, len(r.closures))
	for _, c := range r.closures {
		out = append(out, *c)
	}
	return out, nil
}

var _ repository.ClosureRepository = (*fakeClosureRepo)(nil)

// ── Sales ────────────────────────────────────────────────────────────────────

type fakeSaleRepo struct {
	sales map[uuid.UUID]*model.Sale
}

func newFakeSaleRepo() *fakeSaleRepo {
	return &fakeSaleRepo{sales: make(map[uuid.UUID]*model.Sale)}
}

func (r *fakeSaleRepo) DB() *gorm.DB { return nil }

func (r *fakeSaleRepo) Create(_ context.Context, _ *gorm.DB, s *model.Sale) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	if s.CreatedAt.IsZero() {
		s.CreatedAt = time.Now()
	}
	cp := *s
	r.sales[s.ID] = &cp
	return nil
}

func (r *fakeSaleRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Sale, error) {
	s, ok := r.sales[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *s
	return &cp, nil
}

func (r *fakeSaleRepo) MarkCancelled(_ context.Context, _ *gorm.DB, id uuid.UUID, by string) error {
	s, ok := r.sales[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	now := time.Now()
	s.Status = model.SaleCancelled
	s.CancelledAt = &now
	s.CancelledBy = &by
	return nil
}

func (r *fakeSaleRepo) ListRange(_ context.Context, from, to time.Time) ([]model.Sale, error) {
	var out []model.Sale
	for _, s := range r.sales {
		if s.Status == model.SaleCompleted && !s.CreatedAt.Before(from) && s.CreatedAt.Before(to) {
			out = append(out, *s)
		}
	}
	return out, nil
}

func (r *fakeSaleRepo) List(_ context.Context) ([]model.Sale, error) {
	var out []model.Sale
	for _, s := range r.sales {
		out = append(out, *s)
	}
	return out, nil
}

var _ repository.SaleRepository = (*fakeSaleRepo)(nil)

// ── Expenses ─────────────────────────────────────────────────────────────────

type fakeExpenseRepo struct {
	expenses []model.Expense
}

func (r *fakeExpenseRepo) DB() *gorm.DB { return nil }

func (r *fakeExpenseRepo) Create(_ context.Context, _ *gorm.DB, e *model.Expense) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now()
	}
	r.expenses = append(r.expenses, *e)
	return nil
}

func (r *fakeExpenseRepo) ListRange(_ context.Context, from, to time.Time) ([]model.Expense, error) {
	var out []model.Expense
	for _, e := range r.expenses {
		if !e.CreatedAt.Before(from) && e.CreatedAt.Before(to) {
			out = append(out, e)
		}
	}
	return out, nil
}

func (r *fakeExpenseRepo) List(_ context.Context) ([]model.Expense, error) {
	return append([]model.Expense(nil), r.expenses...), nil
}

func (r *fakeExpenseRepo) Delete(_ context.Context, id uuid.UUID) error {
	for i := range r.expenses {
		if r.expenses[i].ID == id {
			r.expenses = append(r.expenses[:i], r.expenses[i+1:]...)
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

var _ repository.ExpenseRepository = (*fakeExpenseRepo)(nil)

// ── Employee payments ────────────────────────────────────────────────────────

type fakePaymentRepo struct {
	payments []model.EmployeePayment
}

func (r *fakePaymentRepo) DB() *gorm.DB { return nil }

func (r *fakePaymentRepo) Create(_ context.Context, _ *gorm.DB, p *model.EmployeePayment) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now()
	}
	r.payments = append(r.payments, *p)
	return nil
}

func (r *fakePaymentRepo) ListRange(_ context.Context, from, to time.Time) ([]model.EmployeePayment, error) {
	var out []model.EmployeePayment
	for _, p := range r.payments {
		if !p.CreatedAt.Before(from) && p.CreatedAt.Before(to) {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *fakePaymentRepo) List(_ context.Context) ([]model.EmployeePayment, error) {
	return append([]model.EmployeePayment(nil), r.payments...), nil
}

func (r *fakePaymentRepo) Delete(_ context.Context, id uuid.UUID) error {
	for i := range r.payments {
		if r.payments[i].ID == id {
			r.payments = append(r.payments[:i], r.payments[i+1:]...)
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

var _ repository.PaymentRepository = (*fakePaymentRepo)(nil)

// ── Products ─────────────────────────────────────────────────────────────────

type fakeProductRepo struct {
	products map[uuid.UUID]*model.Product
}

func newFakeProductRepo() *fakeProductRepo {
	return &fakeProductRepo{products: make(map[uuid.UUID]*model.Product)}
}

func (r *fakeProductRepo) add(name string, price decimal.Decimal, stock, minStock int, tracked bool) *model.Product {
	p := &model.Product{
		ID:                  uuid.New(),
		Name:                name,
		Price:               price,
		CategoryID:          uuid.New(),
		Stock:               stock,
		MinStock:            minStock,
		HasInventoryControl: tracked,
		IsActive:            true,
	}
	r.products[p.ID] = p
	return p
}

func (r *fakeProductRepo) Create(_ context.Context, p *model.Product) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	r.products[p.ID] = p
	return nil
}

func (r *fakeProductRepo) Update(_ context.Context, p *model.Product) error {
	r.products[p.ID] = p
	return nil
}

func (r *fakeProductRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Product, error) {
	p, ok := r.products[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *p
	return &cp, nil
}

func (r *fakeProductRepo) ListAll(_ context.Context) ([]model.Product, error) {
	var out []model.Product
	for _, p := range r.products {
		out = append(out, *p)
	}
	return out, nil
}

func (r *fakeProductRepo) ListActive(_ context.Context) ([]model.Product, error) {
	var out []model.Product
	for _, p := range r.products {
		if p.IsActive {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *fakeProductRepo) ListByCategory(_ context.Context, categoryID uuid.UUID) ([]model.Product, error) {
	var out []model.Product
	for _, p := range r.products {
		if p.IsActive && p.CategoryID == categoryID {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *fakeProductRepo) Deactivate(_ context.Context, id uuid.UUID) error {
	p, ok := r.products[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	p.IsActive = false
	return nil
}

func (r *fakeProductRepo) AdjustStock(_ context.Context, _ *gorm.DB, id uuid.UUID, quantity int) error {
	p, ok := r.products[id]
	if !ok || !p.HasInventoryControl {
		return nil
	}
	p.Stock -= quantity
	if p.Stock < 0 {
		p.Stock = 0
	}
	return nil
}

func (r *fakeProductRepo) ListLowStock(_ context.Context) ([]model.Product, error) {
	var out []model.Product
	for _, p := range r.products {
		if p.IsActive && p.HasInventoryControl && p.Stock <= p.MinStock {
			out = append(out, *p)
		}
	}
	return out, nil
}

var _ repository.ProductRepository = (*fakeProductRepo)(nil)

// ── Config ───────────────────────────────────────────────────────────────────

type fakeConfigRepo struct {
	cfg model.SystemConfig
}

func newFakeConfigRepo(dailyBase decimal.Decimal, reopenHash string) *fakeConfigRepo {
	return &fakeConfigRepo{cfg: model.SystemConfig{
		ID:                 uuid.New(),
		BusinessName:       "Mar de Sabores",
		TopN:               10,
		DailyBase:          dailyBase,
		ReopenPasswordHash: reopenHash,
	}}
}

func (r *fakeConfigRepo) Get(_ context.Context) (*model.SystemConfig, error) {
	cp := r.cfg
	return &cp, nil
}

func (r *fakeConfigRepo) Update(_ context.Context, cfg *model.SystemConfig) error {
	r.cfg = *cfg
	return nil
}

var _ repository.ConfigRepository = (*fakeConfigRepo)(nil)

// ── Employees ────────────────────────────────────────────────────────────────

type fakeEmployeeRepo struct {
	employees map[uuid.UUID]*model.Employee
}

func newFakeEmployeeRepo() *fakeEmployeeRepo {
	return &fakeEmployeeRepo{employees: make(map[uuid.UUID]*model.Employee)}
}

func (r *fakeEmployeeRepo) add(name, position string, dailyBase decimal.Decimal) *model.Employee {
	e := &model.Employee{ID: uuid.New(), Name: name, Position: position, DailyPayBase: dailyBase, IsActive: true}
	r.employees[e.ID] = e
	return e
}

func (r *fakeEmployeeRepo) Create(_ context.Context, e *model.Employee) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	r.employees[e.ID] = e
	return nil
}

func (r *fakeEmployeeRepo) Update(_ context.Context, e *model.Employee) error {
	r.employees[e.ID] = e
	return nil
}

func (r *fakeEmployeeRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Employee, error) {
	e, ok := r.employees[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *e
	return &cp, nil
}

func (r *fakeEmployeeRepo) List(_ context.Context, activeOnly bool) ([]model.Employee, error) {
	var out []model.Employee
	for _, e := range r.employees {
		if !activeOnly || e.IsActive {
			out = append(out, *e)
		}
	}
	return out, nil
}

func (r *fakeEmployeeRepo) Deactivate(_ context.Context, id uuid.UUID) error {
	e, ok := r.employees[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	e.IsActive = false
	return nil
}

var _ repository.EmployeeRepository = (*fakeEmployeeRepo)(nil)

// ── Users ────────────────────────────────────────────────────────────────────

type fakeUserRepo struct {
	users map[uuid.UUID]*model.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[uuid.UUID]*model.User)}
}

func (r *fakeUserRepo) Create(_ context.Context, u *model.User) error {
	for _, existing := range r.users {
		if existing.Username == u.Username {
			return gorm.ErrDuplicatedKey
		}
	}
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	r.users[u.ID] = u
	return nil
}

func (r *fakeUserRepo) Update(_ context.Context, u *model.User) error {
	r.users[u.ID] = u
	return nil
}

func (r *fakeUserRepo) FindByID(_ context.Context, id uuid.UUID) (*model.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *fakeUserRepo) FindByUsername(_ context.Context, username string) (*model.User, error) {
	for _, u := range r.users {
		if u.Username == username && u.IsActive {
			cp := *u
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeUserRepo) List(_ context.Context, includeInactive bool) ([]model.User, error) {
	var out []model.User
	for _, u := range r.users {
		if includeInactive || u.IsActive {
			out = append(out, *u)
		}
	}
	return out, nil
}

func (r *fakeUserRepo) SetActive(_ context.Context, id uuid.UUID, active bool) error {
	u, ok := r.users[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	u.IsActive = active
	return nil
}

func (r *fakeUserRepo) TouchLastLogin(_ context.Context, id uuid.UUID) error {
	u, ok := r.users[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	now := time.Now()
	u.LastLogin = &now
	return nil
}

var _ repository.UserRepository = (*fakeUserRepo)(nil)

// dec is shorthand for building decimals in tests.
func dec(v string) decimal.Decimal {
	d, err := decimal.NewFromString(v)
	if err != nil {
		panic(err)
	}
	return d
}
