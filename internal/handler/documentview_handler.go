package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"lifehub-service/internal/apperror"
	"lifehub-service/internal/documentview"
	"lifehub-service/internal/model"
	"lifehub-service/internal/record"
	"lifehub-service/pkg/logger"
	"lifehub-service/prometheus"
)

var viewService *documentview.Service

// InitDocumentViewHandler initializes the document-view handlers
func InitDocumentViewHandler(svc *documentview.Service) {
	viewService = svc
}

// moduleType and databaseID are carried by every document-view route: the
// module in the path, the database scope in the databaseId query parameter
// (empty means the module's default database).
func moduleType(c echo.Context) string {
	return c.Param("type")
}

func databaseID(c echo.Context) string {
	return c.QueryParam("databaseId")
}

func respondModuleError(c echo.Context, module string, err error) error {
	if code := apperror.CodeOf(err); code != "" {
		prometheus.RecordModuleError(module, code)
	}
	return respondError(c, err)
}

func GetModuleConfig(c echo.Context) error {
	config, err := viewService.Config(moduleType(c))
	if err != nil {
		return respondModuleError(c, moduleType(c), err)
	}
	return respond(c, http.StatusOK, "Module config retrieved", config)
}

func GetFrozenConfig(c echo.Context) error {
	frozen, err := viewService.FrozenConfig(moduleType(c))
	if err != nil {
		return respondModuleError(c, moduleType(c), err)
	}
	return respond(c, http.StatusOK, "Frozen config retrieved", frozen)
}

func ListViews(c echo.Context) error {
	prometheus.RecordViewOperation(moduleType(c), "list")

	views, err := viewService.ListViews(c.Request().Context(), userIDFrom(c), moduleType(c), databaseID(c))
	if err != nil {
		return respondModuleError(c, moduleType(c), err)
	}
	return respond(c, http.StatusOK, "Views retrieved", views)
}

func GetView(c echo.Context) error {
	view, err := viewService.GetView(c.Request().Context(), userIDFrom(c), moduleType(c), databaseID(c), c.Param("viewId"))
	if err != nil {
		return respondModuleError(c, moduleType(c), err)
	}
	return respond(c, http.StatusOK, "View retrieved", view)
}

func GetDefaultView(c echo.Context) error {
	view, err := viewService.GetDefaultView(c.Request().Context(), userIDFrom(c), moduleType(c), databaseID(c))
	if err != nil {
		return respondModuleError(c, moduleType(c), err)
	}
	return respond(c, http.StatusOK, "Default view retrieved", view)
}

func CreateView(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordViewOperation(moduleType(c), "create")

	var input documentview.CreateViewInput
	if err := c.Bind(&input); err != nil {
		return respondError(c, apperror.NewValidation("invalid request body"))
	}

	view, err := viewService.CreateView(c.Request().Context(), userIDFrom(c), moduleType(c), databaseID(c), input)
	if err != nil {
		return respondModuleError(c, moduleType(c), err)
	}

	log.Info("View created",
		zap.String("module_type", moduleType(c)),
		zap.String("view_id", view.ID))
	return respond(c, http.StatusCreated, "View created", view)
}

func UpdateView(c echo.Context) error {
	prometheus.RecordViewOperation(moduleType(c), "update")

	var patch documentview.ViewPatch
	if err := c.Bind(&patch); err != nil {
		return respondError(c, apperror.NewValidation("invalid request body"))
	}

	view, err := viewService.UpdateView(c.Request().Context(), userIDFrom(c), moduleType(c), databaseID(c), c.Param("viewId"), patch)
	if err != nil {
		return respondModuleError(c, moduleType(c), err)
	}
	return respond(c, http.StatusOK, "View updated", view)
}

func DeleteView(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordViewOperation(moduleType(c), "delete")

	if err := viewService.DeleteView(c.Request().Context(), userIDFrom(c), moduleType(c), databaseID(c), c.Param("viewId")); err != nil {
		return respondModuleError(c, moduleType(c), err)
	}

	log.Info("View deleted",
		zap.String("module_type", moduleType(c)),
		zap.String("view_id", c.Param("viewId")))
	return respond(c, http.StatusOK, "View deleted", nil)
}

func DuplicateView(c echo.Context) error {
	prometheus.RecordViewOperation(moduleType(c), "duplicate")

	var req struct {
		Name string `json:"name"`
	}
	if err := c.Bind(&req); err != nil {
		return respondError(c, apperror.NewValidation("invalid request body"))
	}

	view, err := viewService.DuplicateView(c.Request().Context(), userIDFrom(c), moduleType(c), databaseID(c), c.Param("viewId"), req.Name)
	if err != nil {
		return respondModuleError(c, moduleType(c), err)
	}
	return respond(c, http.StatusCreated, "View duplicated", view)
}

func ListProperties(c echo.Context) error {
	properties, err := viewService.ListProperties(c.Request().Context(), userIDFrom(c), moduleType(c), databaseID(c))
	if err != nil {
		return respondModuleError(c, moduleType(c), err)
	}
	return respond(c, http.StatusOK, "Properties retrieved", properties)
}

func AddProperty(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordPropertyOperation(moduleType(c), "add")

	var input documentview.PropertyInput
	if err := c.Bind(&input); err != nil {
		return respondError(c, apperror.NewValidation("invalid request body"))
	}

	property, err := viewService.AddProperty(c.Request().Context(), userIDFrom(c), moduleType(c), databaseID(c), input)
	if err != nil {
		return respondModuleError(c, moduleType(c), err)
	}

	log.Info("Property added",
		zap.String("module_type", moduleType(c)),
		zap.String("property_id", property.ID))
	return respond(c, http.StatusCreated, "Property added", property)
}

func UpdateProperty(c echo.Context) error {
	prometheus.RecordPropertyOperation(moduleType(c), "update")

	var patch documentview.PropertyPatch
	if err := c.Bind(&patch); err != nil {
		return respondError(c, apperror.NewValidation("invalid request body"))
	}

	property, err := viewService.UpdateProperty(c.Request().Context(), userIDFrom(c), moduleType(c), databaseID(c), c.Param("propertyId"), patch)
	if err != nil {
		return respondModuleError(c, moduleType(c), err)
	}
	return respond(c, http.StatusOK, "Property updated", property)
}

// DeleteProperty answers success with deleted=false when the property is
// required or frozen; only a missing property is an error.
func DeleteProperty(c echo.Context) error {
	prometheus.RecordPropertyOperation(moduleType(c), "delete")

	deleted, err := viewService.DeleteProperty(c.Request().Context(), userIDFrom(c), moduleType(c), databaseID(c), c.Param("propertyId"))
	if err != nil {
		return respondModuleError(c, moduleType(c), err)
	}

	message := "Property deleted"
	if !deleted {
		message = "Property is protected and was not deleted"
	}
	return respond(c, http.StatusOK, message, echo.Map{"deleted": deleted})
}

func listOptions(c echo.Context) (record.ListOptions, error) {
	var opts record.ListOptions

	if raw := c.QueryParam("filters"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &opts.Filters); err != nil {
			return opts, apperror.NewValidation("filters must be a JSON array of {field, operator, value}")
		}
	}
	if raw := c.QueryParam("sorts"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &opts.Sorts); err != nil {
			return opts, apperror.NewValidation("sorts must be a JSON array of {field, direction}")
		}
	}
	if raw := c.QueryParam("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			return opts, apperror.NewValidation("limit must be a non-negative integer")
		}
		opts.Limit = n
	}
	if raw := c.QueryParam("offset"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			return opts, apperror.NewValidation("offset must be a non-negative integer")
		}
		opts.Offset = n
	}
	return opts, nil
}

func ListRecords(c echo.Context) error {
	prometheus.RecordRecordOperation(moduleType(c), "list")

	opts, err := listOptions(c)
	if err != nil {
		return respondError(c, err)
	}

	records, err := viewService.GetRecords(c.Request().Context(), userIDFrom(c), moduleType(c), databaseID(c), opts)
	if err != nil {
		return respondModuleError(c, moduleType(c), err)
	}
	return respond(c, http.StatusOK, "Records retrieved", records)
}

func CreateRecord(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordRecordOperation(moduleType(c), "create")

	var data model.JSONMap
	if err := c.Bind(&data); err != nil {
		return respondError(c, apperror.NewValidation("invalid request body"))
	}

	created, err := viewService.CreateRecord(c.Request().Context(), userIDFrom(c), moduleType(c), databaseID(c), data)
	if err != nil {
		return respondModuleError(c, moduleType(c), err)
	}

	log.Info("Record created",
		zap.String("module_type", moduleType(c)),
		zap.String("record_id", created.ID))
	return respond(c, http.StatusCreated, "Record created", created)
}

func UpdateRecord(c echo.Context) error {
	prometheus.RecordRecordOperation(moduleType(c), "update")

	var data model.JSONMap
	if err := c.Bind(&data); err != nil {
		return respondError(c, apperror.NewValidation("invalid request body"))
	}

	updated, err := viewService.UpdateRecord(c.Request().Context(), userIDFrom(c), moduleType(c), databaseID(c), c.Param("recordId"), data)
	if err != nil {
		return respondModuleError(c, moduleType(c), err)
	}
	return respond(c, http.StatusOK, "Record updated", updated)
}

func DeleteRecord(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordRecordOperation(moduleType(c), "delete")

	if err := viewService.DeleteRecord(c.Request().Context(), userIDFrom(c), moduleType(c), databaseID(c), c.Param("recordId")); err != nil {
		return respondModuleError(c, moduleType(c), err)
	}

	log.Info("Record deleted",
		zap.String("module_type", moduleType(c)),
		zap.String("record_id", c.Param("recordId")))
	return respond(c, http.StatusOK, "Record deleted", nil)
}
