package handlers

import (
	"net/http"

	"lyhu_portal/internal/models"
	"lyhu_portal/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type CtvHandler struct {
	leads services.CtvLeadService
	log   logrus.FieldLogger
}

func NewCtvHandler(leads services.CtvLeadService, log logrus.FieldLogger) *CtvHandler {
	return &CtvHandler{leads: leads, log: log.WithField("handler", "ctv")}
}

func (h *CtvHandler) GetLeads(c *gin.Context) {
	leads := h.leads.LoadLeads(c.Request.Context())
	c.JSON(http.StatusOK, gin.H{"leads": h.leads.FilterByStatus(leads, statusFilter(c))})
}

func (h *CtvHandler) CreateLead(c *gin.Context) {
	var input models.NewCtvLeadInput
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c)
		return
	}

	leads, err := h.leads.AddLead(c.Request.Context(), input)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"lead": leads[0], "leads": leads})
}

func (h *CtvHandler) UpdateLeadStatus(c *gin.Context) {
	var req statusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c)
		return
	}

	leads, err := h.leads.UpdateLeadStatus(c.Request.Context(), c.Param("id"), models.CtvLeadStatus(req.Status))
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"leads": leads})
}

func (h *CtvHandler) GetStats(c *gin.Context) {
	leads := h.leads.LoadLeads(c.Request.Context())
	c.JSON(http.StatusOK, h.leads.GetLeadStats(leads))
}
