package models

// AppointmentStatus is the lifecycle state of an appointment.
type AppointmentStatus string

const (
	StatusScheduled AppointmentStatus = "scheduled"
	StatusCancelled AppointmentStatus = "cancelled"
	StatusCompleted AppointmentStatus = "completed"
)

// AppointmentStatuses lists every status a doctor may pick.
var AppointmentStatuses = []AppointmentStatus{StatusScheduled, StatusCancelled, StatusCompleted}

// Valid reports whether s is a known status.
func (s AppointmentStatus) Valid() bool {
	for _, status := range AppointmentStatuses {
		if s == status {
			return true
		}
	}
	return false
}

// Terminal reports whether no transition is defined out of s.
func (s AppointmentStatus) Terminal() bool {
	return s == StatusCancelled || s == StatusCompleted
}

// DoctorName is the doctors(name) expansion on an appointment or blog row.
type DoctorName struct {
	Name string `json:"name"`
}

// PatientName is the patients(first_name, last_name) expansion on an appointment row.
type PatientName struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// Appointment model
type Appointment struct {
	ID              int64             `gorm:"primaryKey;autoIncrement;column:id" json:"id"`
	PatientID       string            `gorm:"column:patient_id;not null;index" json:"patient_id"`
	DoctorID        string            `gorm:"column:doctor_id;not null;index" json:"doctor_id"`
	AppointmentDate Timestamp         `gorm:"column:appointment_date;not null;index" json:"appointment_date"`
	Reason          string            `gorm:"column:reason" json:"reason"`
	Type            string            `gorm:"column:type" json:"type"`
	Status          AppointmentStatus `gorm:"column:status;check:status IN ('scheduled', 'cancelled', 'completed');not null;default:scheduled" json:"status"`
	Patient         *Patient          `gorm:"foreignKey:PatientID;references:ID" json:"-"`
	Doctor          *Doctor           `gorm:"foreignKey:DoctorID;references:ID" json:"-"`
	DoctorName      *DoctorName       `gorm:"-" json:"doctors,omitempty"`
	PatientName     *PatientName      `gorm:"-" json:"patients,omitempty"`
}

func (Appointment) TableName() string {
	return "appointments"
}

// CounterpartName is the name shown in a role's list: the patient for doctors, the doctor for patients.
func (a Appointment) CounterpartName(role Role) string {
	if role == RoleDoctor {
		if a.PatientName == nil {
			return ""
		}
		return a.PatientName.FirstName + " " + a.PatientName.LastName
	}
	if a.DoctorName == nil {
		return ""
	}
	return a.DoctorName.Name
}

// DoctorStatistics backs the doctor dashboard.
type DoctorStatistics struct {
	TotalPatients        int                       `json:"total_patients"`
	AppointmentsByStatus map[AppointmentStatus]int `json:"appointments_by_status"`
	AppointmentsByWeek   [5]int                    `json:"appointments_by_week"`
}

// BookingSlots are the date and time options offered by the booking form.
type BookingSlots struct {
	Dates []string `json:"dates"`
	Times []string `json:"times"`
}
