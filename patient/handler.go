package patient

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"themison-be/util"
)

type PatientHandler struct {
	Service *PatientService
}

func NewPatientHandler(service *PatientService) *PatientHandler {
	return &PatientHandler{Service: service}
}

func (h *PatientHandler) CreatePatient(c *gin.Context) {
	var req CreatePatientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	p, err := h.Service.CreatePatient(req)
	if err != nil {
		util.ErrorResponse(c, http.StatusInternalServerError, err.Error())
		return
	}
	util.CreatedResponse(c, "Patient created successfully", p)
}

func (h *PatientHandler) GetPatientsByTrial(c *gin.Context) {
	trialID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		util.ErrorResponse(c, http.StatusBadRequest, "Invalid trial id")
		return
	}
	patients, err := h.Service.GetPatientsByTrial(trialID)
	if err != nil {
		util.ErrorResponse(c, http.StatusInternalServerError, err.Error())
		return
	}
	util.SuccessResponse(c, "Patients retrieved successfully", patients)
}

func (h *PatientHandler) GetPatientByID(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		util.ErrorResponse(c, http.StatusBadRequest, "Invalid patient id")
		return
	}
	p, err := h.Service.GetPatientByID(id)
	if err != nil {
		util.ErrorResponse(c, http.StatusInternalServerError, err.Error())
		return
	}
	if p == nil {
		util.ErrorResponse(c, http.StatusNotFound, "Patient not found")
		return
	}
	util.SuccessResponse(c, "Patient retrieved successfully", p)
}

func (h *PatientHandler) UpdatePatientStatus(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		util.ErrorResponse(c, http.StatusBadRequest, "Invalid patient id")
		return
	}
	var req struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		util.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := h.Service.UpdatePatientStatus(id, req.Status); err != nil {
		util.ErrorResponse(c, http.StatusInternalServerError, err.Error())
		return
	}
	util.SuccessResponse(c, "Patient updated successfully", nil)
}

func (h *PatientHandler) CreateVisit(c *gin.Context) {
	patientID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		util.ErrorResponse(c, http.StatusBadRequest, "Invalid patient id")
		return
	}
	var req CreateVisitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	v, err := h.Service.CreateVisit(patientID, req)
	if err != nil {
		util.ErrorResponse(c, http.StatusInternalServerError, err.Error())
		return
	}
	util.CreatedResponse(c, "Visit created successfully", v)
}

func (h *PatientHandler) GetVisitsByPatient(c *gin.Context) {
	patientID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		util.ErrorResponse(c, http.StatusBadRequest, "Invalid patient id")
		return
	}
	visits, err := h.Service.GetVisitsByPatient(patientID)
	if err != nil {
		util.ErrorResponse(c, http.StatusInternalServerError, err.Error())
		return
	}
	util.SuccessResponse(c, "Visits retrieved successfully", visits)
}

func (h *PatientHandler) UpdateVisit(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		util.ErrorResponse(c, http.StatusBadRequest, "Invalid visit id")
		return
	}
	var req UpdateVisitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	v, err := h.Service.UpdateVisit(id, req)
	if err != nil {
		util.ErrorResponse(c, http.StatusInternalServerError, err.Error())
		return
	}
	if v == nil {
		util.ErrorResponse(c, http.StatusNotFound, "Visit not found")
		return
	}
	util.SuccessResponse(c, "Visit updated successfully", v)
}
