package models

type UserRole string

const (
	UserRoleExaminer   UserRole = "EXAMINER"
	UserRoleEvaluator  UserRole = "EVALUATOR"
	UserRoleExaminee   UserRole = "EXAMINEE"
	UserRoleSuperAdmin UserRole = "SUPER_ADMIN"
)

var roleHumanName = map[UserRole]string{
	UserRoleExaminer:   "Экзаменатор",
	UserRoleEvaluator:  "Член комиссии",
	UserRoleExaminee:   "Кандидат",
	UserRoleSuperAdmin: "Суперадмин системы",
}

func (r UserRole) ToHuman() string {
	if human, exist := roleHumanName[r]; exist {
		return human
	}
	return string(r)
}

func (r UserRole) IsExaminer() bool {
	return r == UserRoleExaminer || r == UserRoleSuperAdmin
}

func (r UserRole) CanEvaluate() bool {
	return r == UserRoleEvaluator || r == UserRoleExaminer || r == UserRoleSuperAdmin
}

const SystemUser = "Система"
