package models

// Doctor profile, id shared with the owning user
type Doctor struct {
	ID        string `gorm:"primaryKey;column:id" json:"id"`
	Name      string `gorm:"column:name;not null" json:"name"`
	Specialty string `gorm:"column:specialty" json:"specialty"`
	Bio       string `gorm:"column:bio;type:text" json:"bio"`
}

func (Doctor) TableName() string {
	return "doctors"
}

// Patient profile, id shared with the owning user
type Patient struct {
	ID         string    `gorm:"primaryKey;column:id" json:"id"`
	FirstName  string    `gorm:"column:first_name;not null" json:"first_name"`
	LastName   string    `gorm:"column:last_name;not null;index" json:"last_name"`
	Gender     string    `gorm:"column:gender" json:"gender"`
	BirthDate  Timestamp `gorm:"column:birth_date" json:"birth_date"`
	Email      string    `gorm:"column:email" json:"email"`
	Phone      string    `gorm:"column:phone" json:"phone"`
	Address    string    `gorm:"column:address" json:"address"`
	BloodGroup string    `gorm:"column:blood_group" json:"blood_group"`
}

func (Patient) TableName() string {
	return "patients"
}

// FullName joins first and last name the way the lists display it.
func (p Patient) FullName() string {
	return p.FirstName + " " + p.LastName
}

// Profile is the role-specific record returned by the profile screen.
type Profile struct {
	Role    Role     `json:"role"`
	Doctor  *Doctor  `json:"doctor,omitempty"`
	Patient *Patient `json:"patient,omitempty"`
}

// DoctorEditableFields and PatientEditableFields list the columns the profile form may change.
var (
	DoctorEditableFields  = []string{"name", "specialty", "bio"}
	PatientEditableFields = []string{"first_name", "last_name", "gender", "email", "phone", "address", "blood_group"}
)
