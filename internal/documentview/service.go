package documentview

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"lifehub-service/internal/apperror"
	"lifehub-service/internal/model"
	"lifehub-service/internal/moduleconfig"
	"lifehub-service/internal/record"
)

// Service implements document-view resolution and everything layered on it.
// The registry and the record resolver are injected at startup; the service
// holds no other state.
type Service struct {
	registry *moduleconfig.Registry
	store    Store
	records  *record.Resolver
}

func NewService(registry *moduleconfig.Registry, store Store, records *record.Resolver) *Service {
	return &Service{registry: registry, store: store, records: records}
}

// Config returns the registry entry for a caller-supplied module type.
func (s *Service) Config(moduleType string) (*moduleconfig.ModuleConfig, error) {
	return s.registry.GetModuleConfig(moduleType)
}

// FrozenConfig returns the module's frozen-property policy.
func (s *Service) FrozenConfig(moduleType string) (*moduleconfig.FrozenConfig, error) {
	config, err := s.registry.GetModuleConfig(moduleType)
	if err != nil {
		return nil, err
	}
	return config.EffectiveFrozenConfig(), nil
}

func effectiveDatabaseID(config *moduleconfig.ModuleConfig, databaseID string) string {
	if databaseID != "" {
		return databaseID
	}
	return config.Services.DatabaseID
}

// Resolve returns the user's document view for the module, creating it from
// the module's defaults on first access. Exactly one document view exists
// per (user, module, database); when two first accesses race, the storage
// layer's unique index picks the winner and the loser returns the winner's
// row.
func (s *Service) Resolve(ctx context.Context, userID uint, moduleType, databaseID string) (*model.DocumentView, error) {
	config, err := s.registry.GetModuleConfig(moduleType)
	if err != nil {
		return nil, err
	}
	dbID := effectiveDatabaseID(config, databaseID)

	existing, err := s.store.Find(ctx, userID, moduleType, dbID)
	if err != nil {
		return nil, apperror.NewOperationFailed(moduleType, err)
	}
	if existing != nil {
		return existing, nil
	}

	dv := seedFromConfig(config, userID, dbID)
	if err := s.store.Create(ctx, dv); err != nil {
		if errors.Is(err, ErrAlreadyExists) {
			winner, findErr := s.store.Find(ctx, userID, moduleType, dbID)
			if findErr != nil {
				return nil, apperror.NewOperationFailed(moduleType, findErr)
			}
			if winner != nil {
				return winner, nil
			}
		}
		return nil, apperror.NewOperationFailed(moduleType, err)
	}

	zap.L().Info("document view created",
		zap.Uint("user_id", userID),
		zap.String("module_type", moduleType),
		zap.String("database_id", dbID))
	return dv, nil
}

// seedFromConfig builds a fresh document view from the module's defaults.
// Everything is deep-copied; the registry's declarations are shared across
// users and must never be aliased. Later changes to the defaults do not
// reach existing rows.
func seedFromConfig(config *moduleconfig.ModuleConfig, userID uint, databaseID string) *model.DocumentView {
	now := time.Now().UTC()
	return &model.DocumentView{
		UserID:             userID,
		ModuleType:         config.ModuleType,
		DatabaseID:         databaseID,
		Name:               config.DisplayNamePlural,
		Description:        config.Description,
		Icon:               config.Icon,
		Properties:         model.PropertyList(config.Data.DefaultProperties).Clone(),
		Views:              model.ViewList(config.Data.DefaultViews).Clone(),
		RequiredProperties: model.StringList(config.Data.RequiredProperties).Clone(),
		FrozenProperties:   model.StringList(config.Data.FrozenProperties).Clone(),
		Permissions:        model.PermissionList{{UserID: userID, Permission: model.PermissionAdmin}},
		IsPublic:           false,
		IsDefault:          true,
		CreatedBy:          userID,
		LastEditedBy:       userID,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
}

// save persists a mutated document view, stamping the audit fields.
func (s *Service) save(ctx context.Context, dv *model.DocumentView, userID uint) error {
	dv.Touch(userID)
	if err := s.store.Save(ctx, dv); err != nil {
		return apperror.NewOperationFailed(dv.ModuleType, err)
	}
	return nil
}

// recordService resolves the record backend bound to the module. The method
// name only feeds the service-unavailable message.
func (s *Service) recordService(moduleType, method string) (record.Service, *moduleconfig.ModuleConfig, error) {
	config, err := s.registry.GetModuleConfig(moduleType)
	if err != nil {
		return nil, nil, err
	}
	svc, ok := s.records.Lookup(config.Services.RecordService)
	if !ok {
		return nil, nil, apperror.NewServiceUnavailable(moduleType, method)
	}
	return svc, config, nil
}

// GetRecords delegates a record listing to the module's record service.
func (s *Service) GetRecords(ctx context.Context, userID uint, moduleType, databaseID string, opts record.ListOptions) ([]model.ModuleRecord, error) {
	svc, config, err := s.recordService(moduleType, "getRecords")
	if err != nil {
		return nil, err
	}
	records, err := svc.List(ctx, userID, effectiveDatabaseID(config, databaseID), opts)
	if err != nil {
		zap.L().Error("record listing failed", zap.String("module_type", moduleType), zap.Error(err))
		return nil, apperror.NewOperationFailed(moduleType, err)
	}
	return records, nil
}

// CreateRecord delegates record creation to the module's record service.
func (s *Service) CreateRecord(ctx context.Context, userID uint, moduleType, databaseID string, data model.JSONMap) (*model.ModuleRecord, error) {
	svc, config, err := s.recordService(moduleType, "createRecord")
	if err != nil {
		return nil, err
	}
	rec, err := svc.Create(ctx, userID, effectiveDatabaseID(config, databaseID), data)
	if err != nil {
		zap.L().Error("record creation failed", zap.String("module_type", moduleType), zap.Error(err))
		return nil, apperror.NewOperationFailed(moduleType, err)
	}
	return rec, nil
}

// UpdateRecord delegates a record update to the module's record service.
func (s *Service) UpdateRecord(ctx context.Context, userID uint, moduleType, databaseID, recordID string, data model.JSONMap) (*model.ModuleRecord, error) {
	svc, config, err := s.recordService(moduleType, "updateRecord")
	if err != nil {
		return nil, err
	}
	rec, err := svc.Update(ctx, userID, effectiveDatabaseID(config, databaseID), recordID, data)
	if err != nil {
		zap.L().Error("record update failed", zap.String("module_type", moduleType), zap.String("record_id", recordID), zap.Error(err))
		return nil, apperror.NewOperationFailed(moduleType, err)
	}
	return rec, nil
}

// DeleteRecord delegates a record deletion to the module's record service.
func (s *Service) DeleteRecord(ctx context.Context, userID uint, moduleType, databaseID, recordID string) error {
	svc, config, err := s.recordService(moduleType, "deleteRecord")
	if err != nil {
		return err
	}
	if err := svc.Delete(ctx, userID, effectiveDatabaseID(config, databaseID), recordID); err != nil {
		zap.L().Error("record deletion failed", zap.String("module_type", moduleType), zap.String("record_id", recordID), zap.Error(err))
		return apperror.NewOperationFailed(moduleType, err)
	}
	return nil
}
