package repo

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"customer-groups-api/internal/domain"
)

type UserRepo struct{ db *gorm.DB }

func NewUserRepo(db *gorm.DB) *UserRepo { return &UserRepo{db: db} }

func (r *UserRepo) Create(ctx context.Context, u *domain.User) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&domain.User{}).Where("email = ?", u.Email).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return domain.ErrEmailTaken
		}
		if err := tx.Create(u).Error; err != nil {
			// 预查重可能被并发绕过，唯一索引是最终裁判
			if isDupKey(err) {
				return domain.ErrEmailTaken
			}
			return err
		}
		return nil
	})
}

func (r *UserRepo) FindByID(ctx context.Context, id uint) (*domain.User, error) {
	var u domain.User
	err := r.db.WithContext(ctx).First(&u, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepo) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	var u domain.User
	err := r.db.WithContext(ctx).First(&u, "email = ?", email).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepo) List(ctx context.Context) ([]domain.User, error) {
	var users []domain.User
	if err := r.db.WithContext(ctx).Order("id").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func (r *UserRepo) Count(ctx context.Context) (int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&domain.User{}).Count(&total).Error; err != nil {
		return 0, err
	}
	return total, nil
}

func (r *UserRepo) UpdateField(ctx context.Context, id uint, field domain.UserField, value string) (*domain.User, error) {
	var out domain.User
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var u domain.User
		if err := tx.First(&u, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrUserNotFound
			}
			return err
		}
		if field == domain.UserFieldEmail {
			var count int64
			if err := tx.Model(&domain.User{}).
				Where("email = ? AND id <> ?", value, id).
				Count(&count).Error; err != nil {
				return err
			}
			if count > 0 {
				return domain.ErrEmailTaken
			}
		}
		field.Apply(&u, value)
		if err := tx.Save(&u).Error; err != nil {
			if isDupKey(err) {
				return domain.ErrEmailTaken
			}
			return err
		}
		out = u
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *UserRepo) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// 分组与客户由外键 ON DELETE CASCADE 级联清理
		res := tx.Delete(&domain.User{}, "id = ?", id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return domain.ErrUserNotFound
		}
		return nil
	})
}
