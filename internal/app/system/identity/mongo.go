// internal/app/system/identity/mongo.go
package identity

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	accountstore "github.com/kirisuberu/connect2bulk/internal/app/store/accounts"
	"github.com/kirisuberu/connect2bulk/internal/app/store/emailverify"
	"github.com/kirisuberu/connect2bulk/internal/app/system/normalize"
	"github.com/kirisuberu/connect2bulk/internal/domain/models"
)

// MongoProvider implements Provider on the accounts collection with
// bcrypt-hashed credentials and code verification via the emailverify store.
type MongoProvider struct {
	accounts *accountstore.Store
	verify   *emailverify.Store
	log      *zap.Logger
}

var _ Provider = (*MongoProvider)(nil)

func NewMongoProvider(db *mongo.Database, verify *emailverify.Store, logger *zap.Logger) *MongoProvider {
	return &MongoProvider{
		accounts: accountstore.New(db),
		verify:   verify,
		log:      logger,
	}
}

func (p *MongoProvider) CreateAccount(ctx context.Context, email, password string, temp bool, attrs map[string]string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}

	_, err = p.accounts.Create(ctx, models.Account{
		Email:        email,
		PasswordHash: string(hash),
		Status:       models.AccountUnconfirmed,
		TempPassword: temp,
		Attributes:   attrs,
	})
	if err == accountstore.ErrDuplicateAccount {
		return "", ErrUserExists
	}
	if err != nil {
		return "", err
	}

	code, err := p.verify.Create(ctx, normalize.Email(email), false)
	if err != nil {
		return "", fmt.Errorf("issue verification code: %w", err)
	}
	p.log.Info("account created", zap.String("email", normalize.Email(email)), zap.Bool("temp_password", temp))
	return code, nil
}

func (p *MongoProvider) SignIn(ctx context.Context, email, password string) (NextStep, error) {
	a, err := p.accounts.GetByEmail(ctx, email)
	if err == accountstore.ErrNotFound {
		return StepDone, ErrNotAuthorized
	}
	if err != nil {
		return StepDone, err
	}
	if a.Status == models.AccountDisabled {
		return StepDone, ErrNotAuthorized
	}
	if err := bcrypt.CompareHashAndPassword([]byte(a.PasswordHash), []byte(password)); err != nil {
		return StepDone, ErrNotAuthorized
	}
	switch {
	case a.Status == models.AccountUnconfirmed:
		return StepConfirmSignUp, nil
	case a.TempPassword:
		return StepNewPasswordRequired, nil
	case a.ResetRequired:
		return StepResetRequired, nil
	}
	return StepDone, nil
}

func (p *MongoProvider) ConfirmSignUp(ctx context.Context, email, code string) error {
	if err := p.verify.VerifyCode(ctx, normalize.Email(email), code); err != nil {
		return err
	}
	a, err := p.accounts.GetByEmail(ctx, email)
	if err == accountstore.ErrNotFound {
		return ErrUserNotFound
	}
	if err != nil {
		return err
	}
	if err := p.accounts.SetStatus(ctx, a.ID, models.AccountConfirmed); err != nil {
		return err
	}
	p.log.Info("account confirmed", zap.String("email", a.EmailCI))
	return nil
}

func (p *MongoProvider) ResendSignUpCode(ctx context.Context, email string) (string, error) {
	a, err := p.accounts.GetByEmail(ctx, email)
	if err == accountstore.ErrNotFound {
		return "", ErrUserNotFound
	}
	if err != nil {
		return "", err
	}
	if a.Status != models.AccountUnconfirmed {
		return "", fmt.Errorf("account %s is already confirmed", a.EmailCI)
	}
	return p.verify.Create(ctx, a.EmailCI, true)
}

func (p *MongoProvider) CompleteNewPassword(ctx context.Context, email, tempPassword, newPassword string) error {
	a, err := p.accounts.GetByEmail(ctx, email)
	if err == accountstore.ErrNotFound {
		return ErrNotAuthorized
	}
	if err != nil {
		return err
	}
	if !a.TempPassword {
		return fmt.Errorf("account %s is not on a temporary password", a.EmailCI)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(a.PasswordHash), []byte(tempPassword)); err != nil {
		return ErrNotAuthorized
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	if err := p.accounts.SetPassword(ctx, a.ID, string(hash), false); err != nil {
		return err
	}
	// First sign-in on an invite also proves control of the mailbox.
	if a.Status == models.AccountUnconfirmed {
		if err := p.accounts.SetStatus(ctx, a.ID, models.AccountConfirmed); err != nil {
			return err
		}
	}
	p.log.Info("temporary password replaced", zap.String("email", a.EmailCI))
	return nil
}

func (p *MongoProvider) UpdatePassword(ctx context.Context, email, current, next string) error {
	a, err := p.accounts.GetByEmail(ctx, email)
	if err == accountstore.ErrNotFound {
		return ErrNotAuthorized
	}
	if err != nil {
		return err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(a.PasswordHash), []byte(current)); err != nil {
		return ErrNotAuthorized
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(next), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	return p.accounts.SetPassword(ctx, a.ID, string(hash), false)
}

func (p *MongoProvider) UpdateAttributes(ctx context.Context, email string, attrs map[string]string) error {
	a, err := p.accounts.GetByEmail(ctx, email)
	if err == accountstore.ErrNotFound {
		return ErrUserNotFound
	}
	if err != nil {
		return err
	}
	return p.accounts.SetAttributes(ctx, a.ID, attrs)
}

func (p *MongoProvider) FetchAttributes(ctx context.Context, email string) (map[string]string, error) {
	a, err := p.accounts.GetByEmail(ctx, email)
	if err == accountstore.ErrNotFound {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	attrs := make(map[string]string, len(a.Attributes)+1)
	for k, v := range a.Attributes {
		attrs[k] = v
	}
	attrs["email"] = a.Email
	return attrs, nil
}

func (p *MongoProvider) RequestPasswordReset(ctx context.Context, email string) (string, error) {
	a, err := p.accounts.GetByEmail(ctx, email)
	if err == accountstore.ErrNotFound {
		// Do not reveal whether the address has an account.
		return "", nil
	}
	if err != nil {
		return "", err
	}
	code, err := p.verify.Create(ctx, a.EmailCI, false)
	if err != nil {
		return "", err
	}
	if err := p.accounts.SetResetRequired(ctx, a.ID, true); err != nil {
		return "", err
	}
	return code, nil
}

func (p *MongoProvider) ConfirmPasswordReset(ctx context.Context, email, code, newPassword string) error {
	a, err := p.accounts.GetByEmail(ctx, email)
	if err == accountstore.ErrNotFound {
		return ErrUserNotFound
	}
	if err != nil {
		return err
	}
	if err := p.verify.VerifyCode(ctx, a.EmailCI, code); err != nil {
		return err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	if err := p.accounts.SetPassword(ctx, a.ID, string(hash), false); err != nil {
		return err
	}
	p.log.Info("password reset completed", zap.String("email", a.EmailCI))
	return nil
}
