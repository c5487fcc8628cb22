package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"resto-pos/dtos"
	"resto-pos/services"
	"resto-pos/utils"
)

// StaffController covers staff records, attendance, leave and payroll.
type StaffController struct {
	staff services.StaffService
}

func NewStaffController(staff services.StaffService) *StaffController {
	return &StaffController{staff: staff}
}

type periodQuery struct {
	Month int `form:"month" binding:"required,min=1,max=12"`
	Year  int `form:"year" binding:"required,min=2000"`
}

func (s *StaffController) CreateStaff(c *gin.Context) {
	var input dtos.StaffInput
	if !bindJSON(c, &input) {
		return
	}
	st, err := s.staff.Add(c.Request.Context(), input, utils.GetUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, st)
}

func (s *StaffController) UpdateStaff(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var input dtos.StaffInput
	if !bindJSON(c, &input) {
		return
	}
	st, err := s.staff.Update(c.Request.Context(), id, input, utils.GetUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, st)
}

func (s *StaffController) GetStaff(c *gin.Context) {
	list, err := s.staff.List(c.Request.Context(), c.Query("status"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (s *StaffController) GetStaffByID(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	st, err := s.staff.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, st)
}

func (s *StaffController) CheckIn(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	att, err := s.staff.CheckIn(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, att)
}

func (s *StaffController) CheckOut(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	att, err := s.staff.CheckOut(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, att)
}

// CreateAttendance records or replaces one day's attendance.
func (s *StaffController) CreateAttendance(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var input dtos.AttendanceInput
	if !bindJSON(c, &input) {
		return
	}
	att, err := s.staff.MarkAttendance(c.Request.Context(), id, input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, att)
}

func (s *StaffController) GetAttendance(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	r, ok := bindRange(c)
	if !ok {
		return
	}
	list, err := s.staff.Attendance(c.Request.Context(), id, r)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (s *StaffController) GetAttendanceSummary(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var q periodQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	sum, err := s.staff.AttendanceSummary(c.Request.Context(), id, q.Month, q.Year)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, sum)
}

func (s *StaffController) ApplyLeave(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var input dtos.LeaveInput
	if !bindJSON(c, &input) {
		return
	}
	lr, err := s.staff.ApplyLeave(c.Request.Context(), id, input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, lr)
}

func (s *StaffController) DecideLeave(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var input dtos.LeaveDecisionInput
	if !bindJSON(c, &input) {
		return
	}
	lr, err := s.staff.DecideLeave(c.Request.Context(), id, *input.Approve, utils.GetUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, lr)
}

func (s *StaffController) GetLeaveRequests(c *gin.Context) {
	list, err := s.staff.LeaveRequests(c.Request.Context(), c.Query("status"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (s *StaffController) CalculateSalary(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var q periodQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	bonuses, _ := strconv.ParseFloat(c.Query("bonuses"), 64)
	calc, err := s.staff.CalculateSalary(c.Request.Context(), id, q.Month, q.Year, bonuses)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, calc)
}

func (s *StaffController) GenerateSalary(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var input dtos.SalaryInput
	if !bindJSON(c, &input) {
		return
	}
	sp, err := s.staff.GenerateSalary(c.Request.Context(), id, input, utils.GetUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, sp)
}

func (s *StaffController) PaySalary(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var input struct {
		Month         int    `json:"month" binding:"required,min=1,max=12"`
		Year          int    `json:"year" binding:"required,min=2000"`
		PaymentMethod string `json:"payment_method"`
	}
	if !bindJSON(c, &input) {
		return
	}
	sp, err := s.staff.PaySalary(c.Request.Context(), id, input.Month, input.Year, input.PaymentMethod, utils.GetUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, sp)
}

func (s *StaffController) GetSalaryHistory(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	list, err := s.staff.SalaryHistory(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (s *StaffController) GetPendingSalaries(c *gin.Context) {
	list, err := s.staff.PendingSalaries(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (s *StaffController) GetPayroll(c *gin.Context) {
	var q periodQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	p, err := s.staff.Payroll(c.Request.Context(), q.Month, q.Year)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}
