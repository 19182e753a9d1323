package bootstrap

import (
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/sevasetu/volunteerhub/internal/model"
)

// SeedRoles inserts the role hierarchy if it is not there yet.
func SeedRoles(db *gorm.DB) error {
	defaultRoles := []model.RoleDefinition{
		{Name: model.RoleVolunteer, DisplayName: "Volunteer", Level: model.LevelVolunteer, IsActive: true},
		{Name: model.RoleHead, DisplayName: "Event Head", Level: model.LevelHead, IsActive: true},
		{Name: model.RoleAdmin, DisplayName: "Administrator", Level: model.LevelAdmin, IsActive: true},
	}

	for _, role := range defaultRoles {
		var count int64
		if err := db.Model(&model.RoleDefinition{}).
			Where("name = ?", role.Name).
			Count(&count).Error; err != nil {
			return err
		}

		if count == 0 {
			if err := db.Create(&role).Error; err != nil {
				return err
			}
		}
	}

	return nil
}

// SeedAdmin creates a development admin account. Only call this outside
// production.
func SeedAdmin(db *gorm.DB) error {
	var adminRole model.RoleDefinition
	if err := db.Where("name = ?", model.RoleAdmin).First(&adminRole).Error; err != nil {
		return err
	}

	var count int64
	if err := db.Model(&model.Volunteer{}).
		Where("email = ?", "admin@volunteerhub.local").
		Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	admin := model.Volunteer{
		FullName:     "Administrator",
		Email:        "admin@volunteerhub.local",
		PasswordHash: string(hash),
		RollNumber:   "ADMIN001",
		Branch:       model.BranchOther,
		Year:         model.YearFinal,
		IsActive:     true,
	}
	if err := db.Create(&admin).Error; err != nil {
		return err
	}

	return db.Create(&model.UserRole{
		VolunteerID: admin.ID,
		RoleID:      adminRole.ID,
		IsActive:    true,
	}).Error
}
