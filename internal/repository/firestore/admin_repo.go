package firestore

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	fs "cloud.google.com/go/firestore"

	"goonj/internal/domain"
)

// AdminCollection holds one document per dashboard operator, keyed by a hash of the email.
const AdminCollection = "admins"

type adminDoc struct {
	Email        string    `firestore:"email"`
	Name         string    `firestore:"name"`
	PasswordHash string    `firestore:"passwordHash"`
	Salt         string    `firestore:"salt"`
	CreatedAt    time.Time `firestore:"createdAt"`
	UpdatedAt    time.Time `firestore:"updatedAt"`
}

type adminRepository struct {
	client *fs.Client
	coll   string
}

// NewAdminRepository stores admin accounts in the named collection.
func NewAdminRepository(client *fs.Client, collection string) domain.AdminRepository {
	if collection == "" {
		collection = AdminCollection
	}
	return &adminRepository{client: client, coll: collection}
}

func adminDocID(email string) string {
	return keyDocID(strings.ToLower(strings.TrimSpace(email)))
}

func (r *adminRepository) Create(ctx context.Context, a *domain.Admin) error {
	ref := r.client.Collection(r.coll).Doc(adminDocID(a.Email))
	_, err := ref.Create(ctx, adminDoc{
		Email:        a.Email,
		Name:         a.Name,
		PasswordHash: a.PasswordHash,
		Salt:         a.Salt,
		CreatedAt:    a.CreatedAt,
		UpdatedAt:    a.UpdatedAt,
	})
	if err != nil {
		if errors.Is(mapError(err), domain.ErrDuplicateSubmission) {
			return domain.ErrDuplicateEmail
		}
		return err
	}
	a.ID = ref.ID
	return nil
}

func (r *adminRepository) GetByEmail(ctx context.Context, email string) (*domain.Admin, error) {
	snap, err := r.client.Collection(r.coll).Doc(adminDocID(email)).Get(ctx)
	if err != nil {
		return nil, mapError(err)
	}
	var d adminDoc
	if err := snap.DataTo(&d); err != nil {
		return nil, fmt.Errorf("admin %s: %w", snap.Ref.ID, err)
	}
	return &domain.Admin{
		ID:           snap.Ref.ID,
		Email:        d.Email,
		Name:         d.Name,
		PasswordHash: d.PasswordHash,
		Salt:         d.Salt,
		CreatedAt:    d.CreatedAt,
		UpdatedAt:    d.UpdatedAt,
	}, nil
}
