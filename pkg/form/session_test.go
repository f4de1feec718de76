package form_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/formkit/pkg/form"
	"github.com/dmitrymomot/formkit/pkg/sanitizer"
	"github.com/dmitrymomot/formkit/pkg/validator"
)

func registrationSchema(t *testing.T) *form.Schema {
	t.Helper()

	s, err := form.NewSchema("registration", []form.Field{
		{Name: "fullName", Label: "Full name", Rule: validator.AlphaName(), Sanitize: sanitizer.Trim},
		{Name: "email", Rule: validator.Email(), Sanitize: sanitizer.Trim},
		{Name: "phone", Rule: validator.PhoneLocal(), Sanitize: sanitizer.DigitsMax(validator.PhoneLocalDigits)},
		{Name: "cnic", Rule: validator.NationalID(), Sanitize: sanitizer.DigitsMax(validator.NationalIDDigits)},
		{Name: "department", Rule: validator.RequiredSelection("Department")},
		{Name: "gender", Rule: validator.RequiredSelection("Gender")},
		{Name: "password", Rule: validator.StrongPassword(), Secret: true},
		{Name: "confirmPassword", Rule: validator.MatchesField("password"), Secret: true},
	}, form.WithStorageKey("techSummitUser"))
	require.NoError(t, err)
	return s
}

func fillValid(t *testing.T, sess *form.Session) {
	t.Helper()

	values := [][2]string{
		{"fullName", "  Ada Lovelace "},
		{"email", "ada@example.com"},
		{"phone", "0300-1234567"},
		{"cnic", "35201-1234567-1"},
		{"department", "Engineering"},
		{"gender", "female"},
		{"password", "Abcdef1!"},
		{"confirmPassword", "Abcdef1!"},
	}
	for _, kv := range values {
		_, err := sess.SetValue(kv[0], kv[1])
		require.NoError(t, err)
	}
}

func TestSession_NewSessionIsEvaluated(t *testing.T) {
	t.Parallel()

	sess := registrationSchema(t).NewSession()
	assert.False(t, sess.IsAllValid())

	snap := sess.Snapshot()
	require.Len(t, snap, 8)
	for name, st := range snap {
		assert.False(t, st.Touched, name)
		assert.False(t, st.Visible(), name)
		assert.False(t, st.Outcome.IsValid(), name)
	}

	msg, err := sess.ErrorsFor("department")
	require.NoError(t, err)
	assert.Equal(t, "Department required", msg)
}

func TestSession_SetValue(t *testing.T) {
	t.Parallel()

	t.Run("unknown field", func(t *testing.T) {
		t.Parallel()
		sess := registrationSchema(t).NewSession()
		_, err := sess.SetValue("nickname", "x")
		assert.ErrorIs(t, err, form.ErrUnknownField)

		_, err = sess.ErrorsFor("nickname")
		assert.ErrorIs(t, err, form.ErrUnknownField)
		_, err = sess.Value("nickname")
		assert.ErrorIs(t, err, form.ErrUnknownField)
		_, err = sess.State("nickname")
		assert.ErrorIs(t, err, form.ErrUnknownField)
	})

	t.Run("marks touched and reports changed fields", func(t *testing.T) {
		t.Parallel()
		sess := registrationSchema(t).NewSession()

		changed, err := sess.SetValue("email", "ada@example.com")
		require.NoError(t, err)
		assert.Equal(t, []string{"email"}, changed)

		st, err := sess.State("email")
		require.NoError(t, err)
		assert.True(t, st.Touched)
		assert.True(t, st.Outcome.IsValid())
		assert.Empty(t, st.Message())
	})

	t.Run("touching without changing outcome reports nothing", func(t *testing.T) {
		t.Parallel()
		sess := registrationSchema(t).NewSession()

		changed, err := sess.SetValue("email", "nope")
		require.NoError(t, err)
		assert.Empty(t, changed)

		st, _ := sess.State("email")
		assert.True(t, st.Visible())
	})

	t.Run("idempotent", func(t *testing.T) {
		t.Parallel()
		sess := registrationSchema(t).NewSession()

		_, err := sess.SetValue("phone", "03001234567")
		require.NoError(t, err)
		before := sess.Snapshot()

		changed, err := sess.SetValue("phone", "03001234567")
		require.NoError(t, err)
		assert.Empty(t, changed)
		assert.Equal(t, before, sess.Snapshot())
	})

	t.Run("deterministic across sessions", func(t *testing.T) {
		t.Parallel()
		schema := registrationSchema(t)
		a, b := schema.NewSession(), schema.NewSession()
		fillValid(t, a)
		fillValid(t, b)
		assert.Equal(t, a.Snapshot(), b.Snapshot())
	})
}

func TestSession_Sanitization(t *testing.T) {
	t.Parallel()

	sess := registrationSchema(t).NewSession()

	_, err := sess.SetValue("phone", "03-001-2345678extra")
	require.NoError(t, err)
	v, err := sess.Value("phone")
	require.NoError(t, err)
	assert.Equal(t, "03001234567", v)
	msg, _ := sess.ErrorsFor("phone")
	assert.Empty(t, msg)

	_, err = sess.SetValue("cnic", "35201-1234567-1-99")
	require.NoError(t, err)
	v, _ = sess.Value("cnic")
	assert.Equal(t, "3520112345671", v)

	_, err = sess.SetValue("fullName", "  Ada  ")
	require.NoError(t, err)
	v, _ = sess.Value("fullName")
	assert.Equal(t, "Ada", v)
}

func TestSession_DependencyPropagation(t *testing.T) {
	t.Parallel()

	sess := registrationSchema(t).NewSession()

	changed, err := sess.SetValue("confirmPassword", "Abcdef1!")
	require.NoError(t, err)
	assert.Empty(t, changed, "confirm is still invalid while password is empty")

	changed, err = sess.SetValue("password", "Abcdef1!")
	require.NoError(t, err)
	assert.Equal(t, []string{"password", "confirmPassword"}, changed)

	msg, _ := sess.ErrorsFor("confirmPassword")
	assert.Empty(t, msg)

	changed, err = sess.SetValue("password", "Abcdef1?")
	require.NoError(t, err)
	assert.Equal(t, []string{"confirmPassword"}, changed)

	msg, _ = sess.ErrorsFor("confirmPassword")
	assert.Equal(t, "Passwords do not match", msg)
}

func TestSession_TransitiveRecompute(t *testing.T) {
	t.Parallel()

	s, err := form.NewSchema("chain", []form.Field{
		{Name: "a", Rule: validator.NonEmpty("A")},
		{Name: "b", Rule: validator.MatchesField("a")},
		{Name: "c", Rule: validator.MatchesField("b")},
	})
	require.NoError(t, err)
	sess := s.NewSession()

	_, _ = sess.SetValue("c", "x")
	_, _ = sess.SetValue("b", "x")
	assert.False(t, sess.IsAllValid())

	changed, err := sess.SetValue("a", "x")
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, changed)
	assert.True(t, sess.IsAllValid())

	changed, err = sess.SetValue("a", "y")
	require.NoError(t, err)
	assert.Equal(t, []string{"b"}, changed)

	stC, _ := sess.State("c")
	assert.True(t, stC.Outcome.IsValid(), "c compares to b's raw value, which did not change")
	assert.True(t, stC.Touched)
}

func TestSession_TrySubmit(t *testing.T) {
	t.Parallel()

	t.Run("rejects and lists offenders", func(t *testing.T) {
		t.Parallel()
		sess := registrationSchema(t).NewSession()
		_, _ = sess.SetValue("fullName", "Ada Lovelace")
		_, _ = sess.SetValue("email", "bad")
		before := sess.Snapshot()

		rec, err := sess.TrySubmit()
		require.ErrorIs(t, err, form.ErrSubmissionRejected)
		assert.Zero(t, rec.Len())
		assert.Equal(t, []string{"email", "phone", "cnic", "department", "gender", "password", "confirmPassword"}, form.InvalidFields(err))
		assert.Equal(t, before, sess.Snapshot(), "rejection has no side effects")

		errs := validator.ExtractValidationErrors(err)
		assert.Equal(t, []string{"Enter a valid email address"}, errs.Get("email"))
	})

	t.Run("accepts and excludes secret fields", func(t *testing.T) {
		t.Parallel()
		sess := registrationSchema(t).NewSession()
		fillValid(t, sess)
		require.True(t, sess.IsAllValid())

		rec, err := sess.TrySubmit()
		require.NoError(t, err)
		assert.Equal(t, []string{"fullName", "email", "phone", "cnic", "department", "gender"}, rec.Keys())
		assert.False(t, rec.Has("password"))
		assert.False(t, rec.Has("confirmPassword"))

		v, _ := rec.Get("fullName")
		assert.Equal(t, "Ada Lovelace", v)
		v, _ = rec.Get("phone")
		assert.Equal(t, "03001234567", v)
	})
}

func TestInvalidFields_OtherErrors(t *testing.T) {
	t.Parallel()
	assert.Nil(t, form.InvalidFields(nil))
	assert.Nil(t, form.InvalidFields(form.ErrUnknownField))
}

func TestSession_AgeBoundary(t *testing.T) {
	t.Parallel()

	today := time.Date(2025, time.March, 10, 9, 0, 0, 0, time.UTC)
	s := form.MustSchema("enrollment", []form.Field{
		{Name: "dob", Rule: validator.MinAgeAt(16, func() time.Time { return today })},
	})
	sess := s.NewSession()

	_, err := sess.SetValue("dob", "2009-03-10")
	require.NoError(t, err)
	assert.True(t, sess.IsAllValid())

	_, err = sess.SetValue("dob", "2009-03-11")
	require.NoError(t, err)
	msg, _ := sess.ErrorsFor("dob")
	assert.Equal(t, "You must be 16+", msg)
}
