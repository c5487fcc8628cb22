package models

import "time"

var StaffRoles = []string{"Admin", "Manager", "Cashier", "Waiter", "Chef", "Other"}

var LeaveTypes = []string{"casual", "sick", "emergency", "paid", "unpaid"}

const (
	StaffActive     = "active"
	StaffInactive   = "inactive"
	StaffTerminated = "terminated"

	AttendancePresent = "present"
	AttendanceAbsent  = "absent"
	AttendanceLate    = "late"
	AttendanceHalfDay = "half_day"
	AttendanceLeave   = "leave"

	LeavePending  = "pending"
	LeaveApproved = "approved"
	LeaveRejected = "rejected"

	SalaryPending = "pending"
	SalaryPaid    = "paid"
)

type Staff struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"size:100;not null" json:"name"`
	Role        string    `gorm:"size:20;not null" json:"role"`
	Phone       string    `gorm:"size:30" json:"phone,omitempty"`
	Email       string    `gorm:"size:100" json:"email,omitempty"`
	BasicSalary float64   `gorm:"not null" json:"basic_salary"`
	JoinDate    string    `gorm:"size:10" json:"join_date,omitempty"`
	Status      string    `gorm:"size:20;not null;index" json:"status"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Staff) TableName() string { return "staff" }

type Attendance struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	StaffID     uint       `gorm:"not null;uniqueIndex:idx_staff_day" json:"staff_id"`
	Date        string     `gorm:"size:10;not null;uniqueIndex:idx_staff_day" json:"date"`
	CheckIn     *time.Time `json:"check_in,omitempty"`
	CheckOut    *time.Time `json:"check_out,omitempty"`
	HoursWorked float64    `gorm:"not null" json:"hours_worked"`
	Status      string     `gorm:"size:20;not null" json:"status"`
	Notes       string     `gorm:"size:255" json:"notes,omitempty"`
}

func (Attendance) TableName() string { return "attendance" }

type LeaveRequest struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	StaffID   uint      `gorm:"not null;index" json:"staff_id"`
	Staff     *Staff    `json:"staff,omitempty"`
	StartDate string    `gorm:"size:10;not null" json:"start_date"`
	EndDate   string    `gorm:"size:10;not null" json:"end_date"`
	LeaveType string    `gorm:"size:30" json:"leave_type"`
	Reason    string    `gorm:"size:255" json:"reason,omitempty"`
	Status    string    `gorm:"size:20;not null;index" json:"status"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

type SalaryPayment struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	StaffID     uint       `gorm:"not null;uniqueIndex:idx_salary_period" json:"staff_id"`
	Staff       *Staff     `json:"staff,omitempty"`
	Month       int        `gorm:"not null;uniqueIndex:idx_salary_period" json:"month"`
	Year        int        `gorm:"not null;uniqueIndex:idx_salary_period" json:"year"`
	BasicSalary float64    `gorm:"not null" json:"basic_salary"`
	PresentDays int        `gorm:"not null" json:"present_days"`
	AbsentDays  int        `gorm:"not null" json:"absent_days"`
	Deductions  float64    `gorm:"not null" json:"deductions"`
	Bonuses     float64    `gorm:"not null" json:"bonuses"`
	TotalSalary float64    `gorm:"not null" json:"total_salary"`
	Status      string     `gorm:"size:20;not null;index" json:"status"`
	PaidAt      *time.Time `json:"paid_at,omitempty"`
	CreatedAt   time.Time  `gorm:"autoCreateTime" json:"created_at"`
}
