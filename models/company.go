package models

import (
	"context"
	"strings"
	"time"

	"bitbucket.org/mmdatafocus/claims_backend/config"
	"bitbucket.org/mmdatafocus/claims_backend/utils"
)

type Company struct {
	ID        int       `gorm:"primary_key" json:"id"`
	Name      string    `gorm:"size:255;not null" json:"name" binding:"required"`
	IsExternal *bool    `gorm:"not null;default:false" json:"is_external"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

type NewCompany struct {
	Name       string `json:"name" binding:"required"`
	IsExternal *bool  `json:"is_external"`
}

func GetAllCompanies(ctx context.Context) ([]*Company, error) {

	db := config.GetDB()
	var results []*Company

	if err := db.WithContext(ctx).Order("name").Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func CreateCompany(ctx context.Context, input *NewCompany) (*Company, error) {

	if strings.TrimSpace(input.Name) == "" {
		return nil, utils.ValidationError("company name is required")
	}

	isExternal := false
	if input.IsExternal != nil && *input.IsExternal {
		isExternal = true
	}

	company := Company{
		Name:       strings.TrimSpace(input.Name),
		IsExternal: &isExternal,
	}

	db := config.GetDB()
	if err := db.WithContext(ctx).Create(&company).Error; err != nil {
		return nil, err
	}

	return &company, nil
}

// DeleteCompany hard-deletes a company. Deletion is blocked while any expense
// still references the company; the claims keep their history instead of
// pointing at a dead row.
func DeleteCompany(ctx context.Context, id int) error {

	if err := utils.ValidateResourceId[Company](ctx, id); err != nil {
		return err
	}

	count, err := utils.ResourceCountWhere[Expense](ctx, "company_id = ?", id)
	if err != nil {
		return err
	}
	if count > 0 {
		return utils.ConflictError("company has expense claims and cannot be deleted")
	}

	db := config.GetDB()
	return db.WithContext(ctx).Delete(&Company{}, id).Error
}

// SeedCompanies inserts the starter companies on a fresh database.
func SeedCompanies(ctx context.Context) error {
	db := config.GetDB()

	var count int64
	if err := db.WithContext(ctx).Model(&Company{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	seeds := []Company{
		{Name: "Internal Operations", IsExternal: utils.NewFalse()},
		{Name: "Acme Corp (Client)", IsExternal: utils.NewTrue()},
		{Name: "Globex Inc (Client)", IsExternal: utils.NewTrue()},
	}
	return db.WithContext(ctx).Create(&seeds).Error
}
