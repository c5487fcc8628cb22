package services

import (
	"context"
	"errors"
	"fmt"
	"math"
	"slices"
	"strings"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"resto-pos/dtos"
	"resto-pos/models"
	"resto-pos/utils"
)

// salaryDivisor turns a monthly salary into a daily rate regardless of month length.
const salaryDivisor = 30

type StaffService interface {
	Add(ctx context.Context, input dtos.StaffInput, userID *uint) (*models.Staff, error)
	Update(ctx context.Context, id uint, input dtos.StaffInput, userID *uint) (*models.Staff, error)
	Get(ctx context.Context, id uint) (*models.Staff, error)
	List(ctx context.Context, status string) ([]models.Staff, error)

	CheckIn(ctx context.Context, staffID uint) (*models.Attendance, error)
	CheckOut(ctx context.Context, staffID uint) (*models.Attendance, error)
	MarkAttendance(ctx context.Context, staffID uint, input dtos.AttendanceInput) (*models.Attendance, error)
	Attendance(ctx context.Context, staffID uint, r dtos.DateRange) ([]models.Attendance, error)
	AttendanceSummary(ctx context.Context, staffID uint, month, year int) (dtos.AttendanceSummary, error)

	ApplyLeave(ctx context.Context, staffID uint, input dtos.LeaveInput) (*models.LeaveRequest, error)
	DecideLeave(ctx context.Context, leaveID uint, approve bool, userID *uint) (*models.LeaveRequest, error)
	LeaveRequests(ctx context.Context, status string) ([]models.LeaveRequest, error)

	CalculateSalary(ctx context.Context, staffID uint, month, year int, bonuses float64) (dtos.SalaryCalculation, error)
	GenerateSalary(ctx context.Context, staffID uint, input dtos.SalaryInput, userID *uint) (*models.SalaryPayment, error)
	PaySalary(ctx context.Context, staffID uint, month, year int, method string, userID *uint) (*models.SalaryPayment, error)
	PendingSalaries(ctx context.Context) ([]models.SalaryPayment, error)
	SalaryHistory(ctx context.Context, staffID uint) ([]models.SalaryPayment, error)
	Payroll(ctx context.Context, month, year int) (dtos.Payroll, error)
}

type staffService struct {
	db  *gorm.DB
	now func() time.Time
}

func NewStaffService(db *gorm.DB) StaffService {
	return &staffService{db: db, now: time.Now}
}

func validateStaff(input dtos.StaffInput) error {
	if strings.TrimSpace(input.Name) == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if !slices.Contains(models.StaffRoles, input.Role) {
		return fmt.Errorf("%w: unknown role %q", ErrInvalidInput, input.Role)
	}
	if input.BasicSalary < 0 {
		return fmt.Errorf("%w: salary must not be negative", ErrInvalidInput)
	}
	return nil
}

func (s *staffService) Add(ctx context.Context, input dtos.StaffInput, userID *uint) (*models.Staff, error) {
	if err := validateStaff(input); err != nil {
		return nil, err
	}
	st := models.Staff{
		Name:        strings.TrimSpace(input.Name),
		Role:        input.Role,
		Phone:       input.Phone,
		Email:       input.Email,
		BasicSalary: input.BasicSalary,
		JoinDate:    input.JoinDate,
		Status:      models.StaffActive,
	}
	if st.JoinDate == "" {
		st.JoinDate = utils.FormatDate(s.now())
	}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&st).Error; err != nil {
			return err
		}
		return recordAudit(tx, userID, "staff.create", "staff", uintPtr(st.ID), input)
	})
	if err != nil {
		return nil, err
	}
	return &st, nil
}

func (s *staffService) Update(ctx context.Context, id uint, input dtos.StaffInput, userID *uint) (*models.Staff, error) {
	if err := validateStaff(input); err != nil {
		return nil, err
	}
	var st models.Staff
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&st, id).Error; err != nil {
			return notFound(err)
		}
		st.Name = strings.TrimSpace(input.Name)
		st.Role = input.Role
		st.Phone = input.Phone
		st.Email = input.Email
		st.BasicSalary = input.BasicSalary
		if input.JoinDate != "" {
			st.JoinDate = input.JoinDate
		}
		if input.Status != "" {
			st.Status = input.Status
		}
		if err := tx.Save(&st).Error; err != nil {
			return err
		}
		return recordAudit(tx, userID, "staff.update", "staff", uintPtr(st.ID), input)
	})
	if err != nil {
		return nil, err
	}
	return &st, nil
}

func (s *staffService) Get(ctx context.Context, id uint) (*models.Staff, error) {
	var st models.Staff
	if err := s.db.WithContext(ctx).First(&st, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &st, nil
}

func (s *staffService) List(ctx context.Context, status string) ([]models.Staff, error) {
	q := s.db.WithContext(ctx).Order("name")
	if status != "" {
		q = q.Where("status = ?", status)
	}
	var list []models.Staff
	err := q.Find(&list).Error
	return list, err
}

func (s *staffService) activeStaff(tx *gorm.DB, id uint) (*models.Staff, error) {
	var st models.Staff
	if err := tx.First(&st, id).Error; err != nil {
		return nil, notFound(err)
	}
	if st.Status != models.StaffActive {
		return nil, fmt.Errorf("%w: staff member is %s", ErrConflict, st.Status)
	}
	return &st, nil
}

func (s *staffService) CheckIn(ctx context.Context, staffID uint) (*models.Attendance, error) {
	now := s.now()
	att := models.Attendance{
		StaffID: staffID,
		Date:    utils.FormatDate(now),
		CheckIn: &now,
		Status:  models.AttendancePresent,
	}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := s.activeStaff(tx, staffID); err != nil {
			return err
		}
		var count int64
		if err := tx.Model(&models.Attendance{}).Where("staff_id = ? AND date = ?", staffID, att.Date).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return fmt.Errorf("%w: already checked in today", ErrConflict)
		}
		return tx.Create(&att).Error
	})
	if err != nil {
		return nil, err
	}
	return &att, nil
}

func (s *staffService) CheckOut(ctx context.Context, staffID uint) (*models.Attendance, error) {
	now := s.now()
	var att models.Attendance
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("staff_id = ? AND date = ?", staffID, utils.FormatDate(now)).First(&att).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: no check-in found for today", ErrConflict)
			}
			return err
		}
		if att.CheckIn == nil {
			return fmt.Errorf("%w: check-in time missing", ErrConflict)
		}
		if att.CheckOut != nil {
			return fmt.Errorf("%w: already checked out", ErrConflict)
		}
		att.CheckOut = &now
		att.HoursWorked = now.Sub(*att.CheckIn).Hours()
		return tx.Model(&att).Updates(map[string]any{"check_out": now, "hours_worked": att.HoursWorked}).Error
	})
	if err != nil {
		return nil, err
	}
	return &att, nil
}

// MarkAttendance sets the day's status, replacing any earlier mark.
func (s *staffService) MarkAttendance(ctx context.Context, staffID uint, input dtos.AttendanceInput) (*models.Attendance, error) {
	if _, err := utils.ParseDate(input.Date); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	att := models.Attendance{StaffID: staffID, Date: input.Date, Status: input.Status, Notes: input.Notes}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var st models.Staff
		if err := tx.First(&st, staffID).Error; err != nil {
			return notFound(err)
		}
		if err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "staff_id"}, {Name: "date"}},
			DoUpdates: clause.AssignmentColumns([]string{"status", "notes"}),
		}).Create(&att).Error; err != nil {
			return err
		}
		return tx.Where("staff_id = ? AND date = ?", staffID, input.Date).First(&att).Error
	})
	if err != nil {
		return nil, err
	}
	return &att, nil
}

func (s *staffService) Attendance(ctx context.Context, staffID uint, r dtos.DateRange) ([]models.Attendance, error) {
	q := s.db.WithContext(ctx).Where("staff_id = ?", staffID).Order("date DESC")
	if r.From != "" && r.To != "" {
		q = q.Where("date BETWEEN ? AND ?", r.From, r.To)
	}
	var list []models.Attendance
	err := q.Find(&list).Error
	return list, err
}

func (s *staffService) AttendanceSummary(ctx context.Context, staffID uint, month, year int) (dtos.AttendanceSummary, error) {
	sum := dtos.AttendanceSummary{StaffID: staffID, Month: month, Year: year}
	first, last := utils.MonthRange(year, month)
	var rows []models.Attendance
	if err := s.db.WithContext(ctx).Where("staff_id = ? AND date BETWEEN ? AND ?", staffID, first, last).Find(&rows).Error; err != nil {
		return sum, err
	}
	for _, a := range rows {
		switch a.Status {
		case models.AttendancePresent:
			sum.Present++
		case models.AttendanceLate:
			sum.Late++
		case models.AttendanceHalfDay:
			sum.HalfDay++
		case models.AttendanceAbsent:
			sum.Absent++
		case models.AttendanceLeave:
			sum.Leave++
		}
		sum.Hours += a.HoursWorked
	}
	return sum, nil
}

func (s *staffService) ApplyLeave(ctx context.Context, staffID uint, input dtos.LeaveInput) (*models.LeaveRequest, error) {
	if !slices.Contains(models.LeaveTypes, input.LeaveType) {
		return nil, fmt.Errorf("%w: leave type must be one of %s", ErrInvalidInput, strings.Join(models.LeaveTypes, ", "))
	}
	if _, err := utils.ParseDate(input.StartDate); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if _, err := utils.ParseDate(input.EndDate); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if input.EndDate < input.StartDate {
		return nil, fmt.Errorf("%w: leave ends before it starts", ErrInvalidInput)
	}
	if _, err := s.Get(ctx, staffID); err != nil {
		return nil, err
	}
	lr := models.LeaveRequest{
		StaffID:   staffID,
		StartDate: input.StartDate,
		EndDate:   input.EndDate,
		LeaveType: input.LeaveType,
		Reason:    input.Reason,
		Status:    models.LeavePending,
	}
	if err := s.db.WithContext(ctx).Create(&lr).Error; err != nil {
		return nil, err
	}
	return &lr, nil
}

func (s *staffService) DecideLeave(ctx context.Context, leaveID uint, approve bool, userID *uint) (*models.LeaveRequest, error) {
	status := models.LeaveRejected
	if approve {
		status = models.LeaveApproved
	}
	var lr models.LeaveRequest
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&lr, leaveID).Error; err != nil {
			return notFound(err)
		}
		if lr.Status != models.LeavePending {
			return fmt.Errorf("%w: leave already %s", ErrConflict, lr.Status)
		}
		if err := tx.Model(&lr).Update("status", status).Error; err != nil {
			return err
		}
		lr.Status = status
		return recordAudit(tx, userID, "leave."+status, "leave_request", uintPtr(lr.ID), nil)
	})
	if err != nil {
		return nil, err
	}
	return &lr, nil
}

func (s *staffService) LeaveRequests(ctx context.Context, status string) ([]models.LeaveRequest, error) {
	q := s.db.WithContext(ctx).Preload("Staff").Order("id DESC")
	if status != "" {
		q = q.Where("status = ?", status)
	}
	var list []models.LeaveRequest
	err := q.Find(&list).Error
	return list, err
}

// CalculateSalary deducts a thirtieth of the basic salary for every day of the
// month without a present, late or half-day mark.
func (s *staffService) CalculateSalary(ctx context.Context, staffID uint, month, year int, bonuses float64) (dtos.SalaryCalculation, error) {
	calc := dtos.SalaryCalculation{StaffID: staffID, Month: month, Year: year, Bonuses: bonuses}
	if month < 1 || month > 12 {
		return calc, fmt.Errorf("%w: month must be 1-12", ErrInvalidInput)
	}
	st, err := s.Get(ctx, staffID)
	if err != nil {
		return calc, err
	}
	first, last := utils.MonthRange(year, month)
	var present int64
	err = s.db.WithContext(ctx).Model(&models.Attendance{}).
		Where("staff_id = ? AND date BETWEEN ? AND ? AND status IN ?", staffID, first, last,
			[]string{models.AttendancePresent, models.AttendanceLate, models.AttendanceHalfDay}).
		Count(&present).Error
	if err != nil {
		return calc, err
	}

	calc.BasicSalary = st.BasicSalary
	calc.DaysInMonth = utils.DaysInMonth(year, month)
	calc.PresentDays = int(present)
	calc.AbsentDays = calc.DaysInMonth - calc.PresentDays
	calc.Deductions = float64(calc.AbsentDays) * st.BasicSalary / salaryDivisor
	calc.TotalSalary = math.Max(0, st.BasicSalary-calc.Deductions+bonuses)
	return calc, nil
}

// GenerateSalary stores the calculation as a pending payment, replacing an
// earlier unpaid one for the same period.
func (s *staffService) GenerateSalary(ctx context.Context, staffID uint, input dtos.SalaryInput, userID *uint) (*models.SalaryPayment, error) {
	calc, err := s.CalculateSalary(ctx, staffID, input.Month, input.Year, input.Bonuses)
	if err != nil {
		return nil, err
	}
	var sp models.SalaryPayment
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Where("staff_id = ? AND month = ? AND year = ?", staffID, input.Month, input.Year).First(&sp).Error
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		if sp.Status == models.SalaryPaid {
			return fmt.Errorf("%w: salary already paid", ErrConflict)
		}
		sp.StaffID = staffID
		sp.Month = input.Month
		sp.Year = input.Year
		sp.BasicSalary = calc.BasicSalary
		sp.PresentDays = calc.PresentDays
		sp.AbsentDays = calc.AbsentDays
		sp.Deductions = calc.Deductions
		sp.Bonuses = calc.Bonuses
		sp.TotalSalary = calc.TotalSalary
		sp.Status = models.SalaryPending
		if err := tx.Save(&sp).Error; err != nil {
			return err
		}
		return recordAudit(tx, userID, "salary.generate", "salary_payment", uintPtr(sp.ID), calc)
	})
	if err != nil {
		return nil, err
	}
	return &sp, nil
}

// PaySalary marks a generated salary paid and books it as an expense and a cash debit.
func (s *staffService) PaySalary(ctx context.Context, staffID uint, month, year int, method string, userID *uint) (*models.SalaryPayment, error) {
	if method == "" {
		method = "Cash"
	}
	var sp models.SalaryPayment
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("staff_id = ? AND month = ? AND year = ?", staffID, month, year).First(&sp).Error; err != nil {
			return notFound(err)
		}
		if sp.Status == models.SalaryPaid {
			return fmt.Errorf("%w: salary already paid", ErrConflict)
		}
		now := s.now()
		if err := tx.Model(&sp).Updates(map[string]any{"status": models.SalaryPaid, "paid_at": now}).Error; err != nil {
			return err
		}
		sp.Status = models.SalaryPaid
		sp.PaidAt = &now

		desc := fmt.Sprintf("Salary payment for staff #%d (%02d/%d)", staffID, month, year)
		if err := addExpense(tx, &models.Expense{
			Date:          utils.FormatDate(now),
			Category:      "Staff Salary",
			Description:   desc,
			Amount:        sp.TotalSalary,
			PaymentMethod: method,
		}); err != nil {
			return err
		}
		if sp.TotalSalary > 0 {
			if err := postDebit(tx, sp.TotalSalary, desc, method); err != nil {
				return err
			}
		}
		return recordAudit(tx, userID, "salary.pay", "salary_payment", uintPtr(sp.ID), nil)
	})
	if err != nil {
		return nil, err
	}
	return &sp, nil
}

func (s *staffService) PendingSalaries(ctx context.Context) ([]models.SalaryPayment, error) {
	var list []models.SalaryPayment
	err := s.db.WithContext(ctx).Preload("Staff").Where("status = ?", models.SalaryPending).
		Order("year DESC, month DESC").Find(&list).Error
	return list, err
}

func (s *staffService) SalaryHistory(ctx context.Context, staffID uint) ([]models.SalaryPayment, error) {
	q := s.db.WithContext(ctx).Preload("Staff").Order("year DESC, month DESC")
	if staffID != 0 {
		q = q.Where("staff_id = ?", staffID)
	}
	var list []models.SalaryPayment
	err := q.Find(&list).Error
	return list, err
}

func (s *staffService) Payroll(ctx context.Context, month, year int) (dtos.Payroll, error) {
	p := dtos.Payroll{Month: month, Year: year}
	var list []models.SalaryPayment
	if err := s.db.WithContext(ctx).Where("month = ? AND year = ?", month, year).Find(&list).Error; err != nil {
		return p, err
	}
	var active int64
	if err := s.db.WithContext(ctx).Model(&models.Staff{}).Where("status = ?", models.StaffActive).Count(&active).Error; err != nil {
		return p, err
	}
	p.Staff = int(active)
	p.Payments = len(list)
	for _, sp := range list {
		p.Total += sp.TotalSalary
		if sp.Status == models.SalaryPaid {
			p.Paid += sp.TotalSalary
		} else {
			p.Pending += sp.TotalSalary
		}
	}
	return p, nil
}
