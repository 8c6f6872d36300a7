package data

import (
	"database/sql"
	"encoding/json"
	"errors"
	"strconv"
	"time"
)

// Preference keys. They match the storage keys of the mobile client.
const (
	KeyAuthToken       = "auth_token"
	KeyUserData        = "user_data"
	KeyThemeName       = "themeName"
	KeyUnlockedThemes  = "unlockedThemes"
	KeyCustomColor     = "customColor"
	KeyUseCustomColor  = "useCustomColor"
	KeyUserPreferences = "user_preferences"
)

// GetPreference returns the stored value and whether the key exists.
func (r *Repository) GetPreference(key string) (string, bool, error) {
	var value sql.NullString
	err := r.db.QueryRow(`SELECT value FROM preferences WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return value.String, true, nil
}

func (r *Repository) SetPreference(key, value string) error {
	_, err := r.db.Exec(`INSERT OR REPLACE INTO preferences (key, value, updated_at) VALUES (?, ?, ?)`,
		key, value, time.Now().UTC())
	return err
}

func (r *Repository) DeletePreference(keys ...string) error {
	for _, k := range keys {
		if _, err := r.db.Exec(`DELETE FROM preferences WHERE key = ?`, k); err != nil {
			return err
		}
	}
	return nil
}

// GetJSON decodes a JSON preference into v. Missing keys leave v untouched.
func (r *Repository) GetJSON(key string, v any) (bool, error) {
	raw, ok, err := r.GetPreference(key)
	if err != nil || !ok {
		return false, err
	}
	return true, json.Unmarshal([]byte(raw), v)
}

func (r *Repository) SetJSON(key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return r.SetPreference(key, string(raw))
}

// Session is the signed-in state kept between runs.
type Session struct {
	Token string
	User  json.RawMessage
}

// SaveSession stores the token and the raw user object.
func (r *Repository) SaveSession(s Session) error {
	if err := r.SetPreference(KeyAuthToken, s.Token); err != nil {
		return err
	}
	if len(s.User) == 0 {
		return r.DeletePreference(KeyUserData)
	}
	return r.SetPreference(KeyUserData, string(s.User))
}

// LoadSession returns an empty Session when signed out.
func (r *Repository) LoadSession() (Session, error) {
	token, _, err := r.GetPreference(KeyAuthToken)
	if err != nil {
		return Session{}, err
	}
	user, ok, err := r.GetPreference(KeyUserData)
	if err != nil {
		return Session{}, err
	}
	s := Session{Token: token}
	if ok && user != "" {
		s.User = json.RawMessage(user)
	}
	return s, nil
}

func (r *Repository) ClearSession() error {
	return r.DeletePreference(KeyAuthToken, KeyUserData)
}

// ThemePreferences mirrors the theme keys of the mobile client.
type ThemePreferences struct {
	Name           string
	Unlocked       []string
	CustomColor    string
	UseCustomColor bool
}

func (r *Repository) LoadTheme() (ThemePreferences, error) {
	var t ThemePreferences
	name, _, err := r.GetPreference(KeyThemeName)
	if err != nil {
		return t, err
	}
	t.Name = name
	if _, err := r.GetJSON(KeyUnlockedThemes, &t.Unlocked); err != nil {
		return t, err
	}
	color, _, err := r.GetPreference(KeyCustomColor)
	if err != nil {
		return t, err
	}
	t.CustomColor = color
	use, ok, err := r.GetPreference(KeyUseCustomColor)
	if err != nil {
		return t, err
	}
	if ok {
		t.UseCustomColor, _ = strconv.ParseBool(use)
	}
	return t, nil
}

func (r *Repository) SaveTheme(t ThemePreferences) error {
	if err := r.SetPreference(KeyThemeName, t.Name); err != nil {
		return err
	}
	if err := r.SetJSON(KeyUnlockedThemes, orEmpty(t.Unlocked)); err != nil {
		return err
	}
	if err := r.SetPreference(KeyCustomColor, t.CustomColor); err != nil {
		return err
	}
	return r.SetPreference(KeyUseCustomColor, strconv.FormatBool(t.UseCustomColor))
}

// UserPreferences is the free-form settings object synced to the backend.
type UserPreferences map[string]any

func (r *Repository) LoadUserPreferences() (UserPreferences, error) {
	prefs := UserPreferences{}
	_, err := r.GetJSON(KeyUserPreferences, &prefs)
	return prefs, err
}

func (r *Repository) SaveUserPreferences(p UserPreferences) error {
	return r.SetJSON(KeyUserPreferences, p)
}
