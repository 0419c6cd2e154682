package handlers

import (
	"net/http"

	"github.com/andresuchdata/supplychain-whatif/backend-go/internal/api/middleware"
	"github.com/andresuchdata/supplychain-whatif/backend-go/internal/auth"
	"github.com/andresuchdata/supplychain-whatif/backend-go/internal/domain"
	"github.com/andresuchdata/supplychain-whatif/backend-go/internal/scenario"
	"github.com/andresuchdata/supplychain-whatif/backend-go/internal/service"
	"github.com/gin-gonic/gin"
)

type NetworkHandler struct {
	service *service.NetworkService
}

func NewNetworkHandler(service *service.NetworkService) *NetworkHandler {
	return &NetworkHandler{service: service}
}

// ListCompanies returns every company for administrators and only their own
// company for node users
func (h *NetworkHandler) ListCompanies(c *gin.Context) {
	session := middleware.Session(c)
	companies := h.service.Companies()

	readable := make([]domain.Company, 0, len(companies))
	for _, company := range companies {
		if session.CanRead(company.ID) {
			readable = append(readable, visible(session, company))
		}
	}
	c.JSON(http.StatusOK, readable)
}

func (h *NetworkHandler) GetCompany(c *gin.Context) {
	id := c.Param("id")
	if !middleware.Session(c).CanRead(id) {
		forbidden(c)
		return
	}

	company, err := h.service.Company(id)
	if err != nil {
		respondError(c, "failed to fetch company", err)
		return
	}
	c.JSON(http.StatusOK, visible(middleware.Session(c), company))
}

type createCompanyRequest struct {
	Name        string              `json:"name" binding:"required"`
	Description string              `json:"description"`
	Scenario    domain.Scenario     `json:"scenario" binding:"omitempty,oneof=normal problem"`
	Data        domain.ScenarioData `json:"data"`
}

func (h *NetworkHandler) CreateCompany(c *gin.Context) {
	var req createCompanyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid company payload", err)
		return
	}

	company, err := h.service.CreateCompany(c.Request.Context(), service.NewCompany{
		Name:        req.Name,
		Description: req.Description,
		Scenario:    req.Scenario,
		Data:        req.Data,
	})
	if err != nil {
		respondError(c, "failed to create company", err)
		return
	}
	c.JSON(http.StatusCreated, visible(middleware.Session(c), company))
}

func (h *NetworkHandler) DeleteCompany(c *gin.Context) {
	if err := h.service.DeleteCompany(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, "failed to delete company", err)
		return
	}
	c.Status(http.StatusNoContent)
}

// UpdateData applies a live-controls patch; the baseline is left untouched
func (h *NetworkHandler) UpdateData(c *gin.Context) {
	var patch scenario.DataPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		badRequest(c, "invalid data patch", err)
		return
	}
	h.apply(c, scenario.UpdateCompanyData{CompanyID: c.Param("id"), Patch: patch})
}

func (h *NetworkHandler) AddNode(c *gin.Context) {
	var node domain.Node
	if err := c.ShouldBindJSON(&node); err != nil {
		badRequest(c, "invalid node payload", err)
		return
	}

	company, err := h.service.AddNode(c.Request.Context(), c.Param("id"), node)
	if err != nil {
		respondError(c, "failed to add node", err)
		return
	}
	c.JSON(http.StatusCreated, visible(middleware.Session(c), company))
}

func (h *NetworkHandler) UpdateNode(c *gin.Context) {
	var node domain.Node
	if err := c.ShouldBindJSON(&node); err != nil {
		badRequest(c, "invalid node payload", err)
		return
	}
	if !node.Valid() || node.ID() != c.Param("nodeId") {
		badRequest(c, "node payload must match its kind and the node id in the path", nil)
		return
	}
	h.apply(c, scenario.UpdateNode{CompanyID: c.Param("id"), Node: node})
}

func (h *NetworkHandler) DeleteNode(c *gin.Context) {
	kind, ok := domain.ParseNodeKind(c.Param("kind"))
	if !ok {
		badRequest(c, "unknown node kind", nil)
		return
	}
	h.apply(c, scenario.DeleteNode{CompanyID: c.Param("id"), Kind: kind, NodeID: c.Param("nodeId")})
}

func (h *NetworkHandler) UpdateConnection(c *gin.Context) {
	var conn domain.Connection
	if err := c.ShouldBindJSON(&conn); err != nil {
		badRequest(c, "invalid connection payload", err)
		return
	}
	h.apply(c, scenario.UpdateConnection{CompanyID: c.Param("id"), Connection: conn})
}

type stressTestRequest struct {
	Type scenario.StressTest `json:"type" binding:"required,oneof=SUPPLIER_OUTAGE DEMAND_SPIKE"`
}

func (h *NetworkHandler) ApplyStressTest(c *gin.Context) {
	var req stressTestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "type must be SUPPLIER_OUTAGE or DEMAND_SPIKE", err)
		return
	}
	h.apply(c, scenario.ApplyStressTest{CompanyID: c.Param("id"), Test: req.Type})
}

func (h *NetworkHandler) ResetScenario(c *gin.Context) {
	h.apply(c, scenario.ResetScenario{CompanyID: c.Param("id")})
}

func (h *NetworkHandler) ScenarioStatus(c *gin.Context) {
	id := c.Param("id")
	if !middleware.Session(c).CanRead(id) {
		forbidden(c)
		return
	}

	status, err := h.service.ScenarioStatus(id)
	if err != nil {
		respondError(c, "failed to fetch scenario status", err)
		return
	}
	c.JSON(http.StatusOK, status)
}

type targetRequest struct {
	Target *float64 `json:"target" binding:"required"`
}

func (h *NetworkHandler) UpdateNetworkTarget(c *gin.Context) {
	var req targetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "target is required", err)
		return
	}
	metric, ok := domain.ParseMetricKey(c.Param("metric"))
	if !ok {
		badRequest(c, "unknown metric", nil)
		return
	}
	h.apply(c, scenario.UpdateNetworkMetricTarget{CompanyID: c.Param("id"), Metric: metric, Target: *req.Target})
}

// UpdateWarehouseTarget is open to administrators and to the user of the
// warehouse itself
func (h *NetworkHandler) UpdateWarehouseTarget(c *gin.Context) {
	companyID, warehouseID := c.Param("id"), c.Param("warehouseId")
	if !middleware.Session(c).CanEditWarehouse(companyID, warehouseID) {
		forbidden(c)
		return
	}

	var req targetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "target is required", err)
		return
	}
	metric, ok := domain.ParseMetricKey(c.Param("metric"))
	if !ok {
		badRequest(c, "unknown metric", nil)
		return
	}
	h.apply(c, scenario.UpdateWarehouseMetricTarget{
		CompanyID:   companyID,
		WarehouseID: warehouseID,
		Metric:      metric,
		Target:      *req.Target,
	})
}

func (h *NetworkHandler) apply(c *gin.Context, action scenario.CompanyAction) {
	company, err := h.service.Apply(c.Request.Context(), action)
	if err != nil {
		respondError(c, "failed to apply "+string(action.Type()), err)
		return
	}
	c.JSON(http.StatusOK, visible(middleware.Session(c), company))
}

// visible strips node credentials unless the session is the administrator
func visible(session auth.Session, company domain.Company) domain.Company {
	if session.IsAdmin() {
		return company
	}
	return company.WithoutCredentials()
}
