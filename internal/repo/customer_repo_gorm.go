package repo

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"customer-groups-api/internal/domain"
)

type CustomerRepo struct{ db *gorm.DB }

func NewCustomerRepo(db *gorm.DB) *CustomerRepo { return &CustomerRepo{db: db} }

func (r *CustomerRepo) Create(ctx context.Context, c *domain.Customer) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := checkCustomerFingerprint(tx, c.Email, c.GroupID, 0); err != nil {
			return err
		}
		if err := tx.Create(c).Error; err != nil {
			if isDupKey(err) {
				return domain.ErrDuplicateCustomer
			}
			return err
		}
		return nil
	})
}

// CreateBatch 整批一个事务：任何一条校验或写入失败都回滚到一条不插
func (r *CustomerRepo) CreateBatch(ctx context.Context, cs []domain.Customer) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for i := range cs {
			if err := checkCustomerFingerprint(tx, cs[i].Email, cs[i].GroupID, 0); err != nil {
				return err
			}
		}
		if err := tx.Create(&cs).Error; err != nil {
			if isDupKey(err) {
				return domain.ErrDuplicateCustomer
			}
			return err
		}
		return nil
	})
}

func (r *CustomerRepo) FindByID(ctx context.Context, id uint) (*domain.Customer, error) {
	var c domain.Customer
	err := r.db.WithContext(ctx).First(&c, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *CustomerRepo) Update(ctx context.Context, in *domain.Customer) (*domain.Customer, error) {
	var out domain.Customer
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var c domain.Customer
		if err := tx.First(&c, "id = ?", in.ID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrCustomerNotFound
			}
			return err
		}
		if err := checkCustomerFingerprint(tx, in.Email, c.GroupID, c.ID); err != nil {
			return err
		}
		c.FirstName = in.FirstName
		c.LastName = in.LastName
		c.Email = in.Email
		c.Country = in.Country
		c.City = in.City
		c.Birthday = in.Birthday
		if err := tx.Save(&c).Error; err != nil {
			if isDupKey(err) {
				return domain.ErrDuplicateCustomer
			}
			return err
		}
		out = c
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *CustomerRepo) ListByGroup(ctx context.Context, groupID uint, sortColumn string, descending bool) ([]domain.Customer, error) {
	var customers []domain.Customer
	err := r.db.WithContext(ctx).
		Where("group_id = ?", groupID).
		Order(clause.OrderByColumn{Column: clause.Column{Name: sortColumn}, Desc: descending}).
		Find(&customers).Error
	if err != nil {
		return nil, err
	}
	return customers, nil
}

func (r *CustomerRepo) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Delete(&domain.Customer{}, "id = ?", id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return domain.ErrCustomerNotFound
		}
		return nil
	})
}

// (email, group_id) 在组内唯一；excludeID 用于更新时放过自己
func checkCustomerFingerprint(tx *gorm.DB, email string, groupID, excludeID uint) error {
	var count int64
	q := tx.Model(&domain.Customer{}).Where("email = ? AND group_id = ?", email, groupID)
	if excludeID != 0 {
		q = q.Where("id <> ?", excludeID)
	}
	if err := q.Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return domain.ErrDuplicateCustomer
	}
	return nil
}
