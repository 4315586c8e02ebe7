package auth

import (
	"path/filepath"
	"testing"

	"spendwise/internal/models"
	"spendwise/internal/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

// ServiceTestSuite exercises the credential provider against a real database
type ServiceTestSuite struct {
	suite.Suite
	db  *storage.DB
	svc *Service
}

func (suite *ServiceTestSuite) SetupTest() {
	db, err := storage.NewDB(filepath.Join(suite.T().TempDir(), "auth.db"))
	require.NoError(suite.T(), err, "failed to create test database")
	suite.db = db
	suite.svc = NewService(db, nil)
}

func (suite *ServiceTestSuite) TearDownTest() {
	if suite.db != nil {
		suite.db.Close()
	}
}

func (suite *ServiceTestSuite) storedUsers() []models.User {
	var users []models.User
	_, err := storage.LoadJSON(suite.db, storage.UsersKey, &users)
	require.NoError(suite.T(), err)
	return users
}

func (suite *ServiceTestSuite) TestSignUp() {
	sess, err := suite.svc.SignUp(" Ada@Example.com ", "secret", "Ada")
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), "ada@example.com", sess.User.Email)
	assert.Equal(suite.T(), "Ada", sess.User.Name)
	assert.NotEmpty(suite.T(), sess.User.ID)
	assert.Empty(suite.T(), sess.User.PasswordHash, "session must not carry the hash")

	users := suite.storedUsers()
	require.Len(suite.T(), users, 1)
	assert.NotEqual(suite.T(), "secret", users[0].PasswordHash)
	assert.True(suite.T(), CheckPassword("secret", users[0].PasswordHash))

	current, err := suite.svc.CurrentSession()
	require.NoError(suite.T(), err)
	require.NotNil(suite.T(), current)
	assert.Equal(suite.T(), sess.User.ID, current.User.ID)
	assert.Empty(suite.T(), current.User.PasswordHash)
}

func (suite *ServiceTestSuite) TestSignUpDefaultsName() {
	sess, err := suite.svc.SignUp("grace@navy.mil", "pw", "")
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), "grace", sess.User.Name)
}

func (suite *ServiceTestSuite) TestSignUpDuplicateEmail() {
	_, err := suite.svc.SignUp("ada@example.com", "secret", "Ada")
	require.NoError(suite.T(), err)
	before := suite.storedUsers()

	_, err = suite.svc.SignUp("ADA@example.com", "other", "Impostor")
	require.Error(suite.T(), err)
	assert.ErrorIs(suite.T(), err, models.ErrDuplicateUser)
	assert.Equal(suite.T(), before, suite.storedUsers(), "user list must be unchanged")
}

func (suite *ServiceTestSuite) TestSignUpValidation() {
	_, err := suite.svc.SignUp("not-an-email", "secret", "X")
	assert.ErrorIs(suite.T(), err, models.ErrValidation)

	_, err = suite.svc.SignUp("x@y.z", "", "X")
	assert.ErrorIs(suite.T(), err, models.ErrValidation)

	assert.Empty(suite.T(), suite.storedUsers())
}

func (suite *ServiceTestSuite) TestRegisterDoesNotSignIn() {
	user, err := suite.svc.Register("admin@example.com", "secret", "Admin")
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), "admin@example.com", user.Email)

	current, err := suite.svc.CurrentSession()
	require.NoError(suite.T(), err)
	assert.Nil(suite.T(), current)
}

func (suite *ServiceTestSuite) TestSignIn() {
	_, err := suite.svc.Register("ada@example.com", "secret", "Ada")
	require.NoError(suite.T(), err)

	sess, err := suite.svc.SignIn("ada@example.com", "secret")
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), "Ada", sess.User.Name)
}

func (suite *ServiceTestSuite) TestSignInFailuresAreIndistinguishable() {
	_, err := suite.svc.Register("ada@example.com", "secret", "Ada")
	require.NoError(suite.T(), err)

	_, wrongPassword := suite.svc.SignIn("ada@example.com", "nope")
	_, unknownEmail := suite.svc.SignIn("bob@example.com", "secret")

	assert.ErrorIs(suite.T(), wrongPassword, models.ErrAuth)
	assert.ErrorIs(suite.T(), unknownEmail, models.ErrAuth)
	assert.Equal(suite.T(), wrongPassword.Error(), unknownEmail.Error())

	current, err := suite.svc.CurrentSession()
	require.NoError(suite.T(), err)
	assert.Nil(suite.T(), current)
}

func (suite *ServiceTestSuite) TestSignOut() {
	_, err := suite.svc.SignUp("ada@example.com", "secret", "Ada")
	require.NoError(suite.T(), err)

	require.NoError(suite.T(), suite.svc.SignOut())
	require.NoError(suite.T(), suite.svc.SignOut(), "second sign out is harmless")

	current, err := suite.svc.CurrentSession()
	require.NoError(suite.T(), err)
	assert.Nil(suite.T(), current)
}

func (suite *ServiceTestSuite) TestUpdateProfile() {
	_, err := suite.svc.SignUp("ada@example.com", "secret", "Ada")
	require.NoError(suite.T(), err)
	_, err = suite.svc.Register("bob@example.com", "secret", "Bob")
	require.NoError(suite.T(), err)

	sess, err := suite.svc.UpdateProfile("Ada Lovelace", "")
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), "Ada Lovelace", sess.User.Name)
	assert.Equal(suite.T(), "ada@example.com", sess.User.Email)

	_, err = suite.svc.UpdateProfile("", "bob@example.com")
	assert.ErrorIs(suite.T(), err, models.ErrDuplicateUser)

	sess, err = suite.svc.UpdateProfile("", "lovelace@example.com")
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), "lovelace@example.com", sess.User.Email)

	// Password still works after the email change.
	_, err = suite.svc.SignIn("lovelace@example.com", "secret")
	assert.NoError(suite.T(), err)
}

func (suite *ServiceTestSuite) TestUpdateProfileSignedOut() {
	_, err := suite.svc.UpdateProfile("Nobody", "")
	assert.ErrorIs(suite.T(), err, models.ErrSignedOut)
}

func (suite *ServiceTestSuite) TestDeleteAccount() {
	sess, err := suite.svc.SignUp("ada@example.com", "secret", "Ada")
	require.NoError(suite.T(), err)
	_, err = suite.svc.Register("bob@example.com", "secret", "Bob")
	require.NoError(suite.T(), err)

	removed, err := suite.svc.DeleteAccount()
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), sess.User.ID, removed.ID)

	users := suite.storedUsers()
	require.Len(suite.T(), users, 1)
	assert.Equal(suite.T(), "bob@example.com", users[0].Email)

	current, err := suite.svc.CurrentSession()
	require.NoError(suite.T(), err)
	assert.Nil(suite.T(), current)

	_, err = suite.svc.SignIn("ada@example.com", "secret")
	assert.ErrorIs(suite.T(), err, models.ErrAuth)
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceTestSuite))
}
