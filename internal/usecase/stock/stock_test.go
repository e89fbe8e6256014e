package stock

import (
	"context"
	"sort"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/sehatsetu/sehatsetu-api/internal/audit"
	"github.com/sehatsetu/sehatsetu-api/internal/cache"
	"github.com/sehatsetu/sehatsetu-api/internal/domain"
	"github.com/sehatsetu/sehatsetu-api/internal/domain/stock"
	"github.com/sehatsetu/sehatsetu-api/internal/httperr"
	"github.com/sehatsetu/sehatsetu-api/internal/models"
)

type fakeStock struct {
	items  map[uint]*models.StockItem
	orders []models.OfflineOrder
	lists  int
	nextID uint

	// beforeLock runs inside Modify before the row is read.
	beforeLock func()
	written    []string
}

func newFakeStock(items ...models.StockItem) *fakeStock {
	f := &fakeStock{items: map[uint]*models.StockItem{}}
	for i := range items {
		it := items[i]
		f.items[it.ID] = &it
		if it.ID > f.nextID {
			f.nextID = it.ID
		}
	}
	return f
}

func (f *fakeStock) List(_ context.Context, pharmacyID uint) ([]models.StockItem, error) {
	f.lists++
	var out []models.StockItem
	for _, it := range f.items {
		if it.PharmacyID == pharmacyID {
			out = append(out, *it)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeStock) Create(_ context.Context, item *models.StockItem) error {
	for _, it := range f.items {
		if it.PharmacyID == item.PharmacyID && it.NameKey == item.NameKey {
			return domain.ErrDuplicate
		}
	}
	f.nextID++
	item.ID = f.nextID
	cp := *item
	f.items[item.ID] = &cp
	return nil
}

func (f *fakeStock) Modify(
	_ context.Context,
	pharmacyID uint,
	id uint,
	fn func(*models.StockItem) ([]string, error),
) (*models.StockItem, error) {
	if f.beforeLock != nil {
		f.beforeLock()
	}
	it, ok := f.items[id]
	if !ok || it.PharmacyID != pharmacyID {
		return nil, domain.ErrNotFound
	}
	cp := *it
	columns, err := fn(&cp)
	if err != nil {
		return nil, err
	}
	for _, other := range f.items {
		if other.ID != id && other.PharmacyID == pharmacyID && other.NameKey == cp.NameKey {
			return nil, domain.ErrDuplicate
		}
	}
	f.written = columns
	*it = cp
	return &cp, nil
}

func (f *fakeStock) Delete(_ context.Context, pharmacyID, id uint) error {
	it, ok := f.items[id]
	if !ok || it.PharmacyID != pharmacyID {
		return domain.ErrNotFound
	}
	delete(f.items, id)
	return nil
}

func (f *fakeStock) CountSummary(context.Context, uint) (int64, int64, error) {
	return 0, 0, nil
}

func (f *fakeStock) ProcessOfflineOrder(ctx context.Context, pharmacyID uint, lines []models.MedicineLine) (*models.OfflineOrder, []stock.LineResult, error) {
	items, _ := f.List(ctx, pharmacyID)
	results, touched := stock.Reconcile(lines, items)
	for _, it := range touched {
		f.items[it.ID].Quantity = it.Quantity
	}
	order := stock.OrderFromResults(pharmacyID, results)
	order.ID = uint(len(f.orders) + 1)
	f.orders = append(f.orders, *order)
	return order, results, nil
}

func (f *fakeStock) ListOrders(_ context.Context, _ uint, limit int) ([]models.OfflineOrder, error) {
	if limit < len(f.orders) {
		return f.orders[:limit], nil
	}
	return f.orders, nil
}

type recordingSink struct {
	events chan audit.Event
}

func (s *recordingSink) Log(_ context.Context, ev audit.Event) error {
	s.events <- ev
	return nil
}

func newDispatcher(t *testing.T) (*audit.Dispatcher, *recordingSink) {
	sink := &recordingSink{events: make(chan audit.Event, 32)}
	d := audit.NewDispatcher(sink, zerolog.Nop())
	t.Cleanup(d.Close)
	return d, sink
}

func TestListStockIsCachedUntilMutation(t *testing.T) {
	repo := newFakeStock(models.StockItem{ID: 1, PharmacyID: 3, MedicineName: "Paracetamol", NameKey: "paracetamol", Quantity: 5})
	mem := cache.NewMemory()
	d, _ := newDispatcher(t)

	list := NewListStock(repo, mem, time.Minute)
	inv := NewInventory(repo, mem, d)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if _, err := list.Execute(ctx, 3); err != nil {
			t.Fatalf("list: %v", err)
		}
	}
	if repo.lists != 1 {
		t.Fatalf("expected one repository read, got %d", repo.lists)
	}

	if _, err := inv.Adjust(ctx, 30, 3, 1, -2); err != nil {
		t.Fatalf("adjust: %v", err)
	}

	items, err := list.Execute(ctx, 3)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if repo.lists != 2 || items[0].Quantity != 3 {
		t.Fatalf("expected fresh read after mutation, lists=%d items=%+v", repo.lists, items)
	}
}

func TestInventoryQuantityNeverNegative(t *testing.T) {
	repo := newFakeStock(models.StockItem{ID: 1, PharmacyID: 3, MedicineName: "ORS", NameKey: "ors", Quantity: 2})
	d, _ := newDispatcher(t)
	inv := NewInventory(repo, cache.NewMemory(), d)
	ctx := context.Background()

	item, err := inv.Adjust(ctx, 30, 3, 1, -10)
	if err != nil {
		t.Fatalf("adjust: %v", err)
	}
	if item.Quantity != 0 {
		t.Fatalf("expected clamp at zero, got %d", item.Quantity)
	}

	neg := -1
	if _, err := inv.Update(ctx, 30, 3, 1, UpdateInput{Quantity: &neg}); !httperr.IsBusiness(err, "invalid_quantity") {
		t.Fatalf("expected invalid_quantity, got %v", err)
	}
	if _, err := inv.Add(ctx, 30, 3, "Zinc", -5, nil); !httperr.IsBusiness(err, "invalid_quantity") {
		t.Fatalf("expected invalid_quantity, got %v", err)
	}
}

func TestInventoryAddUpdateDelete(t *testing.T) {
	repo := newFakeStock()
	d, sink := newDispatcher(t)
	inv := NewInventory(repo, cache.NewMemory(), d)
	ctx := context.Background()

	item, err := inv.Add(ctx, 30, 3, "  Azithromycin   500 ", 12, nil)
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if item.MedicineName != "Azithromycin 500" || item.NameKey != "azithromycin 500" {
		t.Errorf("unexpected item %+v", item)
	}

	if _, err := inv.Add(ctx, 30, 3, "AZITHROMYCIN 500", 1, nil); !httperr.IsBusiness(err, "stock_item_exists") {
		t.Fatalf("expected stock_item_exists, got %v", err)
	}

	name := "Azithral 500"
	qty := 20
	price := 98.5
	updated, err := inv.Update(ctx, 30, 3, item.ID, UpdateInput{MedicineName: &name, Quantity: &qty, Price: &price})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Quantity != 20 || updated.NameKey != "azithral 500" || *updated.Price != 98.5 {
		t.Errorf("unexpected update %+v", updated)
	}

	if err := inv.Delete(ctx, 30, 3, item.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := inv.Delete(ctx, 30, 3, item.ID); !httperr.IsBusiness(err, "stock_item_not_found") {
		t.Fatalf("expected stock_item_not_found, got %v", err)
	}
	if _, err := inv.Adjust(ctx, 30, 4, 99, 1); !httperr.IsBusiness(err, "stock_item_not_found") {
		t.Fatalf("expected stock_item_not_found, got %v", err)
	}

	d.Close()
	close(sink.events)
	var actions []string
	for ev := range sink.events {
		actions = append(actions, ev.Action)
	}
	want := []string{"stock_added", "stock_updated", "stock_deleted"}
	if len(actions) != len(want) {
		t.Fatalf("expected %v, got %v", want, actions)
	}
	for i := range want {
		if actions[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, actions)
		}
	}
}

func TestProcessOfflineOrder(t *testing.T) {
	repo := newFakeStock(
		models.StockItem{ID: 1, PharmacyID: 3, MedicineName: "Paracetamol", NameKey: "paracetamol", Quantity: 10},
		models.StockItem{ID: 2, PharmacyID: 3, MedicineName: "Cetirizine", NameKey: "cetirizine", Quantity: 1},
	)
	d, _ := newDispatcher(t)
	uc := NewProcessOfflineOrder(repo, cache.NewMemory(), d)

	summary, err := uc.Execute(context.Background(), 30, 3, []models.MedicineLine{
		{Name: "paracetamol", Quantity: 4},
		{Name: "Cetirizine", Quantity: 2},
		{Name: "Dolo", Quantity: 1},
		{Name: "", Quantity: 5},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if summary.SoldCount != 1 || summary.UnavailableCount != 2 || summary.Message != "Partial sale" {
		t.Fatalf("unexpected summary %+v", summary)
	}
	if summary.OrderID == 0 || len(summary.Details) != 3 {
		t.Fatalf("unexpected summary %+v", summary)
	}
	if repo.items[1].Quantity != 6 || repo.items[2].Quantity != 1 {
		t.Fatalf("expected only the sold line to be deducted, got %d and %d", repo.items[1].Quantity, repo.items[2].Quantity)
	}

	orders, _ := NewListOrders(repo).Execute(context.Background(), 3, 0)
	if len(orders) != 1 || orders[0].SoldCount != 1 {
		t.Fatalf("expected recorded order, got %+v", orders)
	}
}

func TestProcessOfflineOrderRequiresLines(t *testing.T) {
	d, _ := newDispatcher(t)
	uc := NewProcessOfflineOrder(newFakeStock(), cache.NewMemory(), d)

	_, err := uc.Execute(context.Background(), 30, 3, []models.MedicineLine{{Name: "  "}})
	if !httperr.IsBusiness(err, "no_medicines") {
		t.Fatalf("expected no_medicines, got %v", err)
	}
}

func TestInventoryAdjustKeepsConcurrentSale(t *testing.T) {
	repo := newFakeStock(models.StockItem{ID: 1, PharmacyID: 3, MedicineName: "Paracetamol", NameKey: "paracetamol", Quantity: 10})
	d, _ := newDispatcher(t)
	inv := NewInventory(repo, cache.NewMemory(), d)
	ctx := context.Background()

	sold := false
	repo.beforeLock = func() {
		if sold {
			return
		}
		sold = true
		if _, _, err := repo.ProcessOfflineOrder(ctx, 3, []models.MedicineLine{{Name: "Paracetamol", Quantity: 8}}); err != nil {
			t.Fatalf("sale: %v", err)
		}
	}

	item, err := inv.Adjust(ctx, 30, 3, 1, 1)
	if err != nil {
		t.Fatalf("adjust: %v", err)
	}
	if item.Quantity != 3 || repo.items[1].Quantity != 3 {
		t.Fatalf("expected sale of 8 and +1 to leave 3, got %d (stored %d)", item.Quantity, repo.items[1].Quantity)
	}
}

func TestInventoryRenameLeavesQuantityUntouched(t *testing.T) {
	repo := newFakeStock(models.StockItem{ID: 1, PharmacyID: 3, MedicineName: "Paracetamol", NameKey: "paracetamol", Quantity: 10})
	d, _ := newDispatcher(t)
	inv := NewInventory(repo, cache.NewMemory(), d)

	name := "Paracetamol 650"
	if _, err := inv.Update(context.Background(), 30, 3, 1, UpdateInput{MedicineName: &name}); err != nil {
		t.Fatalf("update: %v", err)
	}

	for _, col := range repo.written {
		if col == "quantity" {
			t.Fatalf("rename must not write quantity, wrote %v", repo.written)
		}
	}
	if len(repo.written) != 2 {
		t.Fatalf("expected name columns only, wrote %v", repo.written)
	}
}
