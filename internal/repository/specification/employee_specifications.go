package specification

import "gorm.io/gorm"

// ByEmployeeCode filters employees by their business code.
type ByEmployeeCode struct {
	EmployeeCode string
}

func (s ByEmployeeCode) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("employee_code = ?", s.EmployeeCode)
}

// BySubjectName filters employees by the recognition subject name.
type BySubjectName struct {
	SubjectName string
}

func (s BySubjectName) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("subject_name = ?", s.SubjectName)
}
