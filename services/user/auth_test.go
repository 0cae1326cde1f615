package user

import (
	"testing"

	"obrafacil/models"
	"obrafacil/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

type memoryUserRepo struct {
	byID    map[string]*models.User
	byEmail map[string]*models.User
}

func newMemoryUserRepo() *memoryUserRepo {
	return &memoryUserRepo{byID: map[string]*models.User{}, byEmail: map[string]*models.User{}}
}

func (m *memoryUserRepo) GetByID(id string) (*models.User, error) {
	u, ok := m.byID[id]
	if !ok {
		return nil, utils.ErrNotFound
	}
	copied := *u
	return &copied, nil
}

func (m *memoryUserRepo) GetByEmail(email string) (*models.User, error) {
	u, ok := m.byEmail[email]
	if !ok {
		return nil, utils.ErrNotFound
	}
	copied := *u
	return &copied, nil
}

func (m *memoryUserRepo) GetByIDWithProjection(id string, projection bson.M) (*models.User, error) {
	return m.GetByID(id)
}

func (m *memoryUserRepo) Create(u *models.User) error {
	copied := *u
	m.byID[u.ID] = &copied
	m.byEmail[u.Email] = &copied
	return nil
}

func (m *memoryUserRepo) Update(u *models.User) error {
	copied := *u
	m.byID[u.ID] = &copied
	m.byEmail[u.Email] = &copied
	return nil
}

func (m *memoryUserRepo) UpdateWithDocument(id string, updateDoc bson.M) error {
	u, ok := m.byID[id]
	if !ok {
		return utils.ErrNotFound
	}
	if set, ok := updateDoc["$set"].(bson.M); ok {
		if th, ok := set["tokenHash"].(string); ok {
			u.TokenHash = th
		}
	}
	if unset, ok := updateDoc["$unset"].(bson.M); ok {
		if _, ok := unset["tokenHash"]; ok {
			u.TokenHash = ""
		}
	}
	return nil
}

func (m *memoryUserRepo) Delete(id string) error {
	u, ok := m.byID[id]
	if !ok {
		return utils.ErrNotFound
	}
	delete(m.byEmail, u.Email)
	delete(m.byID, id)
	return nil
}

func TestRegisterUser(t *testing.T) {
	t.Run("hashes the password and defaults the user type", func(t *testing.T) {
		repo := newMemoryUserRepo()
		svc := &DefaultUserService{Repo: repo}

		resp, err := svc.RegisterUser(models.User{
			Name: "Carlos", Email: "Carlos@Example.com", Password: "segredo123",
		})
		require.NoError(t, err)
		assert.NotEmpty(t, resp.ID)
		assert.NotEmpty(t, resp.Token)
		assert.Equal(t, "carlos@example.com", resp.Email)
		assert.Equal(t, models.UserTypeClient, resp.UserType)

		stored := repo.byID[resp.ID]
		require.NotNil(t, stored)
		assert.Empty(t, stored.Password)
		assert.NotEmpty(t, stored.PasswordHash)
		assert.NotEqual(t, "segredo123", stored.PasswordHash)
	})

	t.Run("rejects a duplicate email", func(t *testing.T) {
		repo := newMemoryUserRepo()
		svc := &DefaultUserService{Repo: repo}

		_, err := svc.RegisterUser(models.User{Name: "Carlos", Email: "c@example.com", Password: "segredo123"})
		require.NoError(t, err)

		_, err = svc.RegisterUser(models.User{Name: "Outro", Email: "c@example.com", Password: "segredo123"})
		assert.Error(t, err)
	})

	t.Run("rejects a short password", func(t *testing.T) {
		svc := &DefaultUserService{Repo: newMemoryUserRepo()}
		_, err := svc.RegisterUser(models.User{Name: "Carlos", Email: "c@example.com", Password: "abc"})
		assert.Error(t, err)
	})

	t.Run("rejects an unknown user type", func(t *testing.T) {
		svc := &DefaultUserService{Repo: newMemoryUserRepo()}
		_, err := svc.RegisterUser(models.User{
			Name: "Carlos", Email: "c@example.com", Password: "segredo123", UserType: "admin",
		})
		assert.Error(t, err)
	})
}

func TestAuthenticateUser(t *testing.T) {
	repo := newMemoryUserRepo()
	svc := &DefaultUserService{Repo: repo}

	reg, err := svc.RegisterUser(models.User{Name: "Carlos", Email: "c@example.com", Password: "segredo123"})
	require.NoError(t, err)

	t.Run("valid credentials store the fresh token hash", func(t *testing.T) {
		resp, err := svc.AuthenticateUser("C@Example.com", "segredo123")
		require.NoError(t, err)
		assert.Equal(t, reg.ID, resp.ID)
		assert.NotEmpty(t, resp.Token)
		assert.Equal(t, utils.HashToken(resp.Token), repo.byID[reg.ID].TokenHash)
	})

	t.Run("wrong password is rejected", func(t *testing.T) {
		_, err := svc.AuthenticateUser("c@example.com", "errada")
		assert.Error(t, err)
	})

	t.Run("unknown email is rejected", func(t *testing.T) {
		_, err := svc.AuthenticateUser("nobody@example.com", "segredo123")
		assert.Error(t, err)
	})
}
