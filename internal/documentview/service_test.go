package documentview

import (
	"context"
	"errors"
	"testing"

	"lifehub-service/internal/apperror"
	"lifehub-service/internal/model"
	"lifehub-service/internal/moduleconfig"
	"lifehub-service/internal/record"
)

func scenarioConfig() *moduleconfig.ModuleConfig {
	return &moduleconfig.ModuleConfig{
		ModuleType:        "tasks",
		DisplayName:       "Task",
		DisplayNamePlural: "Tasks",
		Description:       "Track tasks",
		Icon:              "check-square",
		Data: moduleconfig.DataSettings{
			DefaultProperties: []model.Property{
				{ID: "title", Name: "Title", Type: model.PropertyTypeText, Required: true, Frozen: true, Visible: true, Order: 0, Width: 300},
				{ID: "status", Name: "Status", Type: model.PropertyTypeSelect, Required: true, Frozen: true, Visible: true, Order: 1, Width: 150},
			},
			DefaultViews: []model.View{{
				ID:                "all-tasks",
				Name:              "All Tasks",
				Type:              model.ViewTypeTable,
				IsDefault:         true,
				Filters:           []model.ViewFilter{{PropertyID: "status", Operator: model.OperatorNotEquals, Value: "done", Enabled: true}},
				Sorts:             []model.ViewSort{{PropertyID: "title", Direction: model.SortAsc, Order: 0, Enabled: true}},
				VisibleProperties: []string{"title", "status"},
				Config:            model.JSONMap{},
			}},
			RequiredProperties: []string{"title", "status"},
			FrozenProperties:   []string{"title", "status"},
		},
		Services: moduleconfig.ServiceBindings{RecordService: "tasks", ModelName: "Task", DatabaseID: "default"},
	}
}

func newTestService(t *testing.T) (*Service, *MemoryStore) {
	t.Helper()
	reg := moduleconfig.NewRegistry()
	reg.Register(scenarioConfig())
	store := NewMemoryStore()
	records := record.NewResolver()
	records.Register("tasks", record.NewMemoryService("tasks"))
	return NewService(reg, store, records), store
}

func TestResolveSeedsFromDefaults(t *testing.T) {
	svc, _ := newTestService(t)

	dv, err := svc.Resolve(context.Background(), 1, "tasks", "")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}

	if dv.Name != "Tasks" || dv.ModuleType != "tasks" || dv.DatabaseID != "default" {
		t.Fatalf("unexpected identity: %+v", dv)
	}
	if len(dv.Properties) != 2 {
		t.Fatalf("got %d properties, want 2", len(dv.Properties))
	}
	if len(dv.Views) != 1 || dv.Views[0].ID != "all-tasks" {
		t.Fatalf("unexpected views: %+v", dv.Views)
	}
	if !dv.IsDefault {
		t.Fatal("seeded document view should be the default")
	}
	if !dv.RequiredProperties.Contains("title") || !dv.FrozenProperties.Contains("status") {
		t.Fatal("required/frozen lists not copied from config")
	}
	if len(dv.Permissions) != 1 || dv.Permissions[0].UserID != 1 || dv.Permissions[0].Permission != model.PermissionAdmin {
		t.Fatalf("owner permission not seeded: %+v", dv.Permissions)
	}
	if dv.CreatedBy != 1 || dv.LastEditedBy != 1 {
		t.Fatalf("audit fields not stamped: %+v", dv)
	}
}

func TestResolveIsIdempotent(t *testing.T) {
	svc, store := newTestService(t)
	ctx := context.Background()

	first, err := svc.Resolve(ctx, 1, "tasks", "")
	if err != nil {
		t.Fatalf("first Resolve: %v", err)
	}
	second, err := svc.Resolve(ctx, 1, "tasks", "")
	if err != nil {
		t.Fatalf("second Resolve: %v", err)
	}

	if first.ID != second.ID {
		t.Fatalf("ids differ: %d vs %d", first.ID, second.ID)
	}
	if store.Creates() != 1 {
		t.Fatalf("creates = %d, want 1", store.Creates())
	}
}

func TestResolveDoesNotAliasDefaults(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	dv, err := svc.Resolve(ctx, 1, "tasks", "")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	dv.Properties[0].Name = "Mutated"
	dv.Views[0].VisibleProperties[0] = "mutated"

	other, err := svc.Resolve(ctx, 2, "tasks", "")
	if err != nil {
		t.Fatalf("Resolve for second user: %v", err)
	}
	if other.Properties[0].Name != "Title" {
		t.Fatal("defaults were aliased across users")
	}
	if other.Views[0].VisibleProperties[0] != "title" {
		t.Fatal("default view slices were aliased across users")
	}
}

func TestResolveUnknownModule(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Resolve(context.Background(), 1, "spaceships", "")
	if !apperror.Is(err, apperror.CodeConfiguration) {
		t.Fatalf("err = %v, want configuration error", err)
	}
}

func TestResolveScopesByDatabase(t *testing.T) {
	svc, store := newTestService(t)
	ctx := context.Background()

	a, err := svc.Resolve(ctx, 1, "tasks", "")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	b, err := svc.Resolve(ctx, 1, "tasks", "archive")
	if err != nil {
		t.Fatalf("Resolve with database: %v", err)
	}
	if a.ID == b.ID {
		t.Fatal("distinct databases should resolve distinct document views")
	}
	if store.Creates() != 2 {
		t.Fatalf("creates = %d, want 2", store.Creates())
	}
}

// lateFind simulates losing a first-access race: the initial existence check
// misses, then the insert collides with the winner's row.
type lateFind struct {
	Store
	missed bool
}

func (s *lateFind) Find(ctx context.Context, userID uint, moduleType, databaseID string) (*model.DocumentView, error) {
	if !s.missed {
		s.missed = true
		return nil, nil
	}
	return s.Store.Find(ctx, userID, moduleType, databaseID)
}

func TestResolveRaceLoserFetchesWinner(t *testing.T) {
	reg := moduleconfig.NewRegistry()
	reg.Register(scenarioConfig())
	store := NewMemoryStore()
	ctx := context.Background()

	winner, err := NewService(reg, store, record.NewResolver()).Resolve(ctx, 1, "tasks", "")
	if err != nil {
		t.Fatalf("winner Resolve: %v", err)
	}

	loser := NewService(reg, &lateFind{Store: store}, record.NewResolver())
	got, err := loser.Resolve(ctx, 1, "tasks", "")
	if err != nil {
		t.Fatalf("loser Resolve: %v", err)
	}
	if got.ID != winner.ID {
		t.Fatalf("loser got id %d, want winner's %d", got.ID, winner.ID)
	}
	if store.Creates() != 1 {
		t.Fatalf("creates = %d, want 1", store.Creates())
	}
}

func TestGetRecordsDelegates(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	created, err := svc.CreateRecord(ctx, 1, "tasks", "", model.JSONMap{"title": "Ship it", "status": "todo"})
	if err != nil {
		t.Fatalf("CreateRecord: %v", err)
	}
	if created.DatabaseID != "default" {
		t.Fatalf("record database = %q, want binding default", created.DatabaseID)
	}

	records, err := svc.GetRecords(ctx, 1, "tasks", "", record.ListOptions{})
	if err != nil {
		t.Fatalf("GetRecords: %v", err)
	}
	if len(records) != 1 || records[0].Data["title"] != "Ship it" {
		t.Fatalf("unexpected records: %+v", records)
	}

	if _, err := svc.UpdateRecord(ctx, 1, "tasks", "", created.ID, model.JSONMap{"status": "done"}); err != nil {
		t.Fatalf("UpdateRecord: %v", err)
	}
	if err := svc.DeleteRecord(ctx, 1, "tasks", "", created.ID); err != nil {
		t.Fatalf("DeleteRecord: %v", err)
	}
}

func TestRecordDelegationWithoutServiceBinding(t *testing.T) {
	reg := moduleconfig.NewRegistry()
	reg.Register(scenarioConfig())
	svc := NewService(reg, NewMemoryStore(), record.NewResolver())

	_, err := svc.GetRecords(context.Background(), 1, "tasks", "", record.ListOptions{})
	if !apperror.Is(err, apperror.CodeServiceUnavailable) {
		t.Fatalf("err = %v, want service unavailable", err)
	}
	msg := apperror.MessageOf(err)
	if msg != `record service for "tasks" does not implement getRecords` {
		t.Fatalf("message = %q", msg)
	}
}

type failingRecords struct{}

func (failingRecords) List(ctx context.Context, userID uint, databaseID string, opts record.ListOptions) ([]model.ModuleRecord, error) {
	return nil, errors.New("connection reset")
}
func (failingRecords) Create(ctx context.Context, userID uint, databaseID string, data model.JSONMap) (*model.ModuleRecord, error) {
	return nil, errors.New("connection reset")
}
func (failingRecords) Update(ctx context.Context, userID uint, databaseID, recordID string, data model.JSONMap) (*model.ModuleRecord, error) {
	return nil, apperror.NewNotFound("record", recordID)
}
func (failingRecords) Delete(ctx context.Context, userID uint, databaseID, recordID string) error {
	return errors.New("connection reset")
}

func TestRecordDelegationWrapsFailures(t *testing.T) {
	reg := moduleconfig.NewRegistry()
	reg.Register(scenarioConfig())
	records := record.NewResolver()
	records.Register("tasks", failingRecords{})
	svc := NewService(reg, NewMemoryStore(), records)
	ctx := context.Background()

	_, err := svc.GetRecords(ctx, 1, "tasks", "", record.ListOptions{})
	if !apperror.Is(err, apperror.CodeOperationFailed) {
		t.Fatalf("err = %v, want operation failed", err)
	}

	// Typed errors from the record service keep their identity and status.
	_, err = svc.UpdateRecord(ctx, 1, "tasks", "", "rec_missing", model.JSONMap{})
	if !apperror.Is(err, apperror.CodeNotFound) {
		t.Fatalf("err = %v, want not found to pass through", err)
	}
	if apperror.StatusOf(err) != 404 {
		t.Fatalf("status = %d, want 404", apperror.StatusOf(err))
	}
}
