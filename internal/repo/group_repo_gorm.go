package repo

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"customer-groups-api/internal/domain"
)

type GroupRepo struct{ db *gorm.DB }

func NewGroupRepo(db *gorm.DB) *GroupRepo { return &GroupRepo{db: db} }

func (r *GroupRepo) Create(ctx context.Context, g *domain.Group) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&domain.Group{}).
			Where("admin_id = ? AND name = ? AND description = ?", g.AdminID, g.Name, g.Description).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return domain.ErrDuplicateGroup
		}
		if err := tx.Create(g).Error; err != nil {
			if isDupKey(err) {
				return domain.ErrDuplicateGroup
			}
			return err
		}
		return nil
	})
}

func (r *GroupRepo) FindByID(ctx context.Context, id uint) (*domain.Group, error) {
	var g domain.Group
	err := r.db.WithContext(ctx).First(&g, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &g, nil
}

func (r *GroupRepo) Update(ctx context.Context, id uint, name, description string) (*domain.Group, error) {
	var out domain.Group
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var g domain.Group
		if err := tx.First(&g, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrGroupNotFound
			}
			return err
		}
		g.Name = name
		g.Description = description
		if err := tx.Save(&g).Error; err != nil {
			if isDupKey(err) {
				return domain.ErrDuplicateGroup
			}
			return err
		}
		out = g
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *GroupRepo) ListByAdmin(ctx context.Context, adminID uint, sortColumn string, descending bool) ([]domain.Group, error) {
	q := r.db.WithContext(ctx).Where("admin_id = ?", adminID)
	q = q.Order(clause.OrderByColumn{Column: clause.Column{Name: sortColumn}, Desc: descending})
	if sortColumn == "created_at" {
		// 同一天的并列用创建时刻打破，方向一致
		q = q.Order(clause.OrderByColumn{Column: clause.Column{Name: "created_at_time"}, Desc: descending})
	}
	var groups []domain.Group
	if err := q.Find(&groups).Error; err != nil {
		return nil, err
	}
	return groups, nil
}

func (r *GroupRepo) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Delete(&domain.Group{}, "id = ?", id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return domain.ErrGroupNotFound
		}
		return nil
	})
}
