package dtos

type StaffInput struct {
	Name        string  `json:"name" binding:"required,max=100"`
	Role        string  `json:"role" binding:"required,oneof=Admin Manager Cashier Waiter Chef Other"`
	Phone       string  `json:"phone"`
	Email       string  `json:"email" binding:"omitempty,email"`
	BasicSalary float64 `json:"basic_salary" binding:"gte=0"`
	JoinDate    string  `json:"join_date" binding:"omitempty,datetime=2006-01-02"`
	Status      string  `json:"status" binding:"omitempty,oneof=active inactive terminated"`
}

type AttendanceInput struct {
	Date   string `json:"date" binding:"required,datetime=2006-01-02"`
	Status string `json:"status" binding:"required,oneof=present absent late half_day leave"`
	Notes  string `json:"notes"`
}

type LeaveInput struct {
	StartDate string `json:"start_date" binding:"required,datetime=2006-01-02"`
	EndDate   string `json:"end_date" binding:"required,datetime=2006-01-02"`
	LeaveType string `json:"leave_type" binding:"required,oneof=casual sick emergency paid unpaid"`
	Reason    string `json:"reason"`
}

type LeaveDecisionInput struct {
	Approve *bool `json:"approve" binding:"required"`
}

type SalaryInput struct {
	Month   int     `json:"month" binding:"required,min=1,max=12"`
	Year    int     `json:"year" binding:"required,min=2000"`
	Bonuses float64 `json:"bonuses" binding:"gte=0"`
}

type AttendanceSummary struct {
	StaffID uint    `json:"staff_id"`
	Month   int     `json:"month"`
	Year    int     `json:"year"`
	Present int     `json:"present"`
	Late    int     `json:"late"`
	HalfDay int     `json:"half_day"`
	Absent  int     `json:"absent"`
	Leave   int     `json:"leave"`
	Hours   float64 `json:"hours"`
}

type SalaryCalculation struct {
	StaffID     uint    `json:"staff_id"`
	Month       int     `json:"month"`
	Year        int     `json:"year"`
	BasicSalary float64 `json:"basic_salary"`
	DaysInMonth int     `json:"days_in_month"`
	PresentDays int     `json:"present_days"`
	AbsentDays  int     `json:"absent_days"`
	Deductions  float64 `json:"deductions"`
	Bonuses     float64 `json:"bonuses"`
	TotalSalary float64 `json:"total_salary"`
}

type Payroll struct {
	Month    int     `json:"month"`
	Year     int     `json:"year"`
	Staff    int     `json:"staff"`
	Total    float64 `json:"total"`
	Paid     float64 `json:"paid"`
	Pending  float64 `json:"pending"`
	Payments int     `json:"payments"`
}
