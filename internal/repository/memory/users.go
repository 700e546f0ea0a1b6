package memory

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jwalitptl/clinic-api/internal/model"
	"github.com/jwalitptl/clinic-api/internal/repository"
)

type userRow struct{ model.User }

func (r *userRow) created() time.Time { return r.CreatedAt }
func (r *userRow) key() uuid.UUID     { return r.ID }

func (r *userRow) value() *model.User {
	u := r.User
	return &u
}

type UserRepository struct {
	db *db
}

func (r *UserRepository) Get(ctx context.Context, id uuid.UUID) (*model.User, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	row, ok := r.db.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return row.value(), nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	for _, row := range r.db.users {
		if row.Email == email {
			return row.value(), nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *UserRepository) FindFirst(ctx context.Context, match model.UserMatch) (*model.User, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	rows := r.sorted()
	for _, row := range rows {
		if row.ID == match.ExcludeID {
			continue
		}
		if (match.Name != "" && row.Name == match.Name) ||
			(match.Email != "" && row.Email == match.Email) ||
			(match.Phone != "" && row.Phone == match.Phone) {
			return row.value(), nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *UserRepository) List(ctx context.Context, filter model.UserFilter) ([]*model.User, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	users := make([]*model.User, 0, len(r.db.users))
	for _, row := range r.sorted() {
		if filter.Role != "" && row.Role != filter.Role {
			continue
		}
		users = append(users, row.value())
	}
	return users, nil
}

func (r *UserRepository) Create(ctx context.Context, user *model.User) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	if _, ok := r.db.users[user.ID]; ok {
		return conflict("id")
	}
	if err := r.checkUnique(user); err != nil {
		return err
	}
	r.db.users[user.ID] = &userRow{User: *user}
	return nil
}

func (r *UserRepository) Update(ctx context.Context, user *model.User) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	if _, ok := r.db.users[user.ID]; !ok {
		return repository.ErrNotFound
	}
	if err := r.checkUnique(user); err != nil {
		return err
	}
	r.db.users[user.ID] = &userRow{User: *user}
	return nil
}

func (r *UserRepository) Delete(ctx context.Context, id uuid.UUID) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	if _, ok := r.db.users[id]; !ok {
		return repository.ErrNotFound
	}
	for _, p := range r.db.prescriptions {
		if p.DoctorID == id {
			return inUse("doctorId")
		}
	}
	for _, hc := range r.db.healthChecks {
		if hc.LabDoctorID == id {
			return inUse("labDoctorId")
		}
	}
	delete(r.db.users, id)
	return nil
}

func (r *UserRepository) checkUnique(user *model.User) error {
	for id, row := range r.db.users {
		if id == user.ID {
			continue
		}
		switch {
		case row.Name == user.Name:
			return conflict("name")
		case row.Email == user.Email:
			return conflict("email")
		case row.Phone == user.Phone:
			return conflict("phone")
		}
	}
	return nil
}

func (r *UserRepository) sorted() []*userRow {
	rows := make([]*userRow, 0, len(r.db.users))
	for _, row := range r.db.users {
		rows = append(rows, row)
	}
	sortByCreated(rows)
	return rows
}
