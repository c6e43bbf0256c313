package firestore

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	fs "cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"goonj/internal/domain"
)

// DefaultCollection holds one document per registration.
const DefaultCollection = "registrations"

// keyCollectionSuffix names the collection that maps idempotency keys to registrations.
const keyCollectionSuffix = "_keys"

type eventDoc struct {
	ID    string `firestore:"id"`
	Name  string `firestore:"name"`
	Price int64  `firestore:"price"`
	Type  string `firestore:"type"`
}

type registrationDoc struct {
	Name           string     `firestore:"name"`
	Email          string     `firestore:"email"`
	Phone          string     `firestore:"phone"`
	College        string     `firestore:"college"`
	Course         string     `firestore:"course"`
	Year           string     `firestore:"year"`
	Events         []eventDoc `firestore:"events"`
	TotalAmount    int64      `firestore:"totalAmount"`
	PaymentMethod  string     `firestore:"paymentMethod"`
	TransactionID  string     `firestore:"transactionId,omitempty"`
	PaymentStatus  string     `firestore:"paymentStatus"`
	Status         string     `firestore:"status"`
	IdempotencyKey string     `firestore:"idempotencyKey,omitempty"`
	CreatedAt      time.Time  `firestore:"createdAt,serverTimestamp"`
	UpdatedAt      time.Time  `firestore:"updatedAt,serverTimestamp"`
	SubmittedAt    time.Time  `firestore:"submittedAt,serverTimestamp"`
}

type keyDoc struct {
	RegistrationID string    `firestore:"registrationId"`
	CreatedAt      time.Time `firestore:"createdAt,serverTimestamp"`
}

type registrationRepository struct {
	client *fs.Client
	coll   string
}

// NewRegistrationRepository stores registrations in the named collection.
func NewRegistrationRepository(client *fs.Client, collection string) domain.RegistrationRepository {
	if collection == "" {
		collection = DefaultCollection
	}
	return &registrationRepository{client: client, coll: collection}
}

func (r *registrationRepository) registrations() *fs.CollectionRef {
	return r.client.Collection(r.coll)
}

func (r *registrationRepository) keys() *fs.CollectionRef {
	return r.client.Collection(r.coll + keyCollectionSuffix)
}

// Create writes the registration and, when it carries an idempotency key, the key document in
// the same transaction. Timestamps are assigned by the server and read back.
func (r *registrationRepository) Create(ctx context.Context, reg *domain.Registration) error {
	ref := r.registrations().NewDoc()
	doc := toDoc(reg)

	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *fs.Transaction) error {
		if reg.IdempotencyKey != "" {
			if err := tx.Create(r.keys().Doc(keyDocID(reg.IdempotencyKey)), keyDoc{RegistrationID: ref.ID}); err != nil {
				return err
			}
		}
		return tx.Create(ref, doc)
	})
	if err != nil {
		return mapError(err)
	}

	snap, err := ref.Get(ctx)
	if err != nil {
		return fmt.Errorf("registration %s written but not readable: %w", ref.ID, mapError(err))
	}
	stored, err := decode(snap)
	if err != nil {
		return err
	}
	reg.ID = stored.ID
	reg.CreatedAt, reg.UpdatedAt, reg.SubmittedAt = stored.CreatedAt, stored.UpdatedAt, stored.SubmittedAt
	return nil
}

func (r *registrationRepository) GetByIdempotencyKey(ctx context.Context, key string) (*domain.Registration, error) {
	snap, err := r.keys().Doc(keyDocID(key)).Get(ctx)
	if err != nil {
		return nil, mapError(err)
	}
	var k keyDoc
	if err := snap.DataTo(&k); err != nil {
		return nil, fmt.Errorf("failed to decode key document: %w", err)
	}
	regSnap, err := r.registrations().Doc(k.RegistrationID).Get(ctx)
	if err != nil {
		return nil, mapError(err)
	}
	return decode(regSnap)
}

func (r *registrationRepository) ListAll(ctx context.Context) ([]*domain.Registration, error) {
	snaps, err := r.registrations().OrderBy("createdAt", fs.Desc).Documents(ctx).GetAll()
	if err != nil {
		return nil, mapError(err)
	}
	regs := make([]*domain.Registration, 0, len(snaps))
	for _, snap := range snaps {
		reg, err := decode(snap)
		if err != nil {
			return nil, err
		}
		regs = append(regs, reg)
	}
	return regs, nil
}

// Delete removes the registration and its idempotency key document.
func (r *registrationRepository) Delete(ctx context.Context, id string) error {
	ref := r.registrations().Doc(id)
	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *fs.Transaction) error {
		snap, err := tx.Get(ref)
		if err != nil {
			return err
		}
		if key, err := snap.DataAt("idempotencyKey"); err == nil {
			if s, ok := key.(string); ok && s != "" {
				if err := tx.Delete(r.keys().Doc(keyDocID(s))); err != nil {
					return err
				}
			}
		}
		return tx.Delete(ref, fs.Exists)
	})
	return mapError(err)
}

func decode(snap *fs.DocumentSnapshot) (*domain.Registration, error) {
	var d registrationDoc
	if err := snap.DataTo(&d); err != nil {
		return nil, fmt.Errorf("registration %s: %w", snap.Ref.ID, err)
	}
	return fromDoc(snap.Ref.ID, d), nil
}

func toDoc(reg *domain.Registration) registrationDoc {
	events := make([]eventDoc, 0, len(reg.Events))
	for _, e := range reg.Events {
		events = append(events, eventDoc{ID: e.ID, Name: e.Name, Price: e.Price, Type: e.Type})
	}
	return registrationDoc{
		Name:           reg.Name,
		Email:          reg.Email,
		Phone:          reg.Phone,
		College:        reg.College,
		Course:         reg.Course,
		Year:           reg.Year,
		Events:         events,
		TotalAmount:    reg.TotalAmount,
		PaymentMethod:  string(reg.PaymentMethod),
		TransactionID:  reg.TransactionID,
		PaymentStatus:  string(reg.PaymentStatus),
		Status:         string(reg.Status),
		IdempotencyKey: reg.IdempotencyKey,
	}
}

func fromDoc(id string, d registrationDoc) *domain.Registration {
	events := make([]domain.RegisteredEvent, 0, len(d.Events))
	for _, e := range d.Events {
		events = append(events, domain.RegisteredEvent{ID: e.ID, Name: e.Name, Price: e.Price, Type: e.Type})
	}
	return &domain.Registration{
		ID:             id,
		Name:           d.Name,
		Email:          d.Email,
		Phone:          d.Phone,
		College:        d.College,
		Course:         d.Course,
		Year:           d.Year,
		Events:         events,
		TotalAmount:    d.TotalAmount,
		PaymentMethod:  domain.PaymentMethod(d.PaymentMethod),
		TransactionID:  d.TransactionID,
		PaymentStatus:  domain.PaymentStatus(d.PaymentStatus),
		Status:         domain.RegistrationStatus(d.Status),
		IdempotencyKey: d.IdempotencyKey,
		CreatedAt:      d.CreatedAt,
		UpdatedAt:      d.UpdatedAt,
		SubmittedAt:    d.SubmittedAt,
	}
}

// keyDocID turns a client key into a valid document ID.
func keyDocID(key string) string {
	sum := sha256.Sum256([]byte(key))
	return hex.EncodeToString(sum[:])
}

func mapError(err error) error {
	if err == nil {
		return nil
	}
	switch status.Code(err) {
	case codes.NotFound:
		return domain.ErrNotFound
	case codes.AlreadyExists:
		return domain.ErrDuplicateSubmission
	}
	var st interface{ GRPCStatus() *status.Status }
	if errors.As(err, &st) && st.GRPCStatus().Code() == codes.AlreadyExists {
		return domain.ErrDuplicateSubmission
	}
	return err
}
