package api

import (
	"context"
	"encoding/json"
	"net/url"

	"github.com/kerbaras/fitguide/pkg/data"
)

// ID is a backend identifier. The backend uses integers for some resources
// and strings for others; both decode to their decimal or literal form.
type ID string

func (id *ID) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*id = ""
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*id = ID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*id = ID(n.String())
	return nil
}

type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// Login exchanges credentials for a token and keeps it on the client.
func (c *Client) Login(ctx context.Context, username, password string) (*TokenResponse, error) {
	form := url.Values{}
	form.Set("username", username)
	form.Set("password", password)

	var tok TokenResponse
	if err := c.postForm(ctx, "/auth/token", form, &tok); err != nil {
		return nil, err
	}
	c.SetToken(tok.AccessToken)
	return &tok, nil
}

// LoginGoogle exchanges a Google ID token for a backend token.
func (c *Client) LoginGoogle(ctx context.Context, idToken string) (*TokenResponse, error) {
	var tok TokenResponse
	if err := c.post(ctx, "/auth/google", map[string]string{"token": idToken}, &tok); err != nil {
		return nil, err
	}
	c.SetToken(tok.AccessToken)
	return &tok, nil
}

// User is the signed-in account. Raw keeps the full object for storage.
type User struct {
	ID       ID              `json:"id"`
	Email    string          `json:"email"`
	Username string          `json:"username"`
	FullName string          `json:"full_name"`
	Raw      json.RawMessage `json:"-"`
}

func (c *Client) Me(ctx context.Context) (*User, error) {
	var raw json.RawMessage
	if err := c.get(ctx, "/users/me", nil, &raw); err != nil {
		return nil, err
	}
	var u User
	if err := json.Unmarshal(raw, &u); err != nil {
		return nil, err
	}
	u.Raw = raw
	return &u, nil
}

// WorkoutRoutines lists the routines stored on the backend.
func (c *Client) WorkoutRoutines(ctx context.Context) ([]data.Workout, error) {
	var out []data.Workout
	if err := c.get(ctx, "/workout-routines", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) WorkoutRoutine(ctx context.Context, id string) (*data.Workout, error) {
	var out data.Workout
	if err := c.get(ctx, "/workout-routines/"+url.PathEscape(id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// SaveWorkoutRoutine uploads w and returns the stored version.
func (c *Client) SaveWorkoutRoutine(ctx context.Context, w *data.Workout) (*data.Workout, error) {
	var out data.Workout
	if err := c.post(ctx, "/workout-routines", w, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

type Meal struct {
	ID       ID      `json:"id,omitempty"`
	Name     string  `json:"name"`
	MealType string  `json:"meal_type,omitempty"`
	Date     string  `json:"date,omitempty"`
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fat      float64 `json:"fat"`
}

// Meals lists the meals logged on date (YYYY-MM-DD); empty means today on
// the backend.
func (c *Client) Meals(ctx context.Context, date string) ([]Meal, error) {
	params := url.Values{}
	if date != "" {
		params.Set("date", date)
	}
	var out []Meal
	if err := c.get(ctx, "/nutrition/meals", params, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) LogMeal(ctx context.Context, m Meal) (*Meal, error) {
	var out Meal
	if err := c.post(ctx, "/nutrition/meals", m, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

type Food struct {
	ID          ID      `json:"id,omitempty"`
	Name        string  `json:"name"`
	Brand       string  `json:"brand,omitempty"`
	ServingSize string  `json:"serving_size,omitempty"`
	Calories    float64 `json:"calories"`
	Protein     float64 `json:"protein"`
	Carbs       float64 `json:"carbs"`
	Fat         float64 `json:"fat"`
}

func (c *Client) SearchFoods(ctx context.Context, query string) ([]Food, error) {
	params := url.Values{}
	params.Set("query", query)
	var out []Food
	if err := c.get(ctx, "/nutrition/search", params, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// SavePreferences pushes the user's settings object.
func (c *Client) SavePreferences(ctx context.Context, prefs map[string]any) error {
	return c.post(ctx, "/user/preferences", prefs, nil)
}

type Routine struct {
	ID        ID              `json:"id"`
	Name      string          `json:"name"`
	FolderID  ID              `json:"folder_id,omitempty"`
	Exercises json.RawMessage `json:"exercises,omitempty"`
}

type RoutineFolder struct {
	ID   ID     `json:"id"`
	Name string `json:"name"`
}

func (c *Client) Routines(ctx context.Context) ([]Routine, error) {
	var out []Routine
	if err := c.get(ctx, "/routines", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) RoutineFolders(ctx context.Context) ([]RoutineFolder, error) {
	var out []RoutineFolder
	if err := c.get(ctx, "/routine-folders", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}
