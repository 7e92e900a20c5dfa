package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"

	"github.com/dcode-github/dormdash/models"
)

// Credentials is the email/password pair several backend routes take in the
// request body instead of a bearer token.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResult is the backend's reply to a login. Token is empty when the
// backend answered without one.
type LoginResult struct {
	Token string
	Body  any
}

func (c *Client) Health(ctx context.Context) (*Response, error) {
	return c.Do(ctx, http.MethodGet, "/", nil)
}

// Login authenticates and persists the returned token.
func (c *Client) Login(ctx context.Context, creds Credentials) (*LoginResult, error) {
	resp, err := c.Do(ctx, http.MethodPost, "/auth/login", creds)
	if err != nil {
		return nil, err
	}

	out := &LoginResult{Body: resp.JSON}
	if body, ok := resp.JSON.(map[string]any); ok {
		for _, key := range []string{"token", "accessToken", "access_token"} {
			if s, ok := body[key].(string); ok && s != "" {
				out.Token = s
				break
			}
		}
	}
	if out.Token != "" && c.Tokens != nil {
		if err := c.Tokens.SetToken(ctx, out.Token); err != nil {
			return out, fmt.Errorf("persist token: %w", err)
		}
	}
	return out, nil
}

func (c *Client) Signup(ctx context.Context, creds Credentials) (*Response, error) {
	return c.Do(ctx, http.MethodPost, "/auth/signup", creds)
}

// Logout forgets the persisted token. The backend has no logout route.
func (c *Client) Logout(ctx context.Context) error {
	if c.Tokens == nil {
		return nil
	}
	return c.Tokens.ClearToken(ctx)
}

func (c *Client) CreateProfile(ctx context.Context, p models.Profile) (*Response, error) {
	return c.Do(ctx, http.MethodPost, "/profile/createProfile", p)
}

func (c *Client) GetProfile(ctx context.Context, creds Credentials) (*models.Profile, error) {
	resp, err := c.Do(ctx, http.MethodPost, "/profile/getProfile", creds)
	if err != nil {
		return nil, err
	}
	p, err := decodeOne[models.Profile](resp)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (c *Client) UpdateProfile(ctx context.Context, p models.Profile) (*Response, error) {
	return c.Do(ctx, http.MethodPut, "/profile/updateProfile", p)
}

func (c *Client) ListProducts(ctx context.Context) ([]models.Property, error) {
	return c.listProperties(ctx, http.MethodGet, "/product/all", nil)
}

func (c *Client) GetProduct(ctx context.Context, id string) (*models.Property, error) {
	resp, err := c.Do(ctx, http.MethodGet, "/product/get/"+url.PathEscape(id), nil)
	if err != nil {
		return nil, err
	}
	p, err := decodeOne[models.Property](resp)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// ListProductsByLogin lists the products owned by the account behind creds.
func (c *Client) ListProductsByLogin(ctx context.Context, creds Credentials) ([]models.Property, error) {
	return c.listProperties(ctx, http.MethodPost, "/product/getByLogin", creds)
}

func (c *Client) ListMyProducts(ctx context.Context) ([]models.Property, error) {
	return c.listProperties(ctx, http.MethodGet, "/product/my", nil)
}

// SearchProducts passes the query through to the backend search route.
func (c *Client) SearchProducts(ctx context.Context, query url.Values) ([]models.Property, error) {
	return c.listProperties(ctx, http.MethodGet, "/product/search?"+query.Encode(), nil)
}

func (c *Client) listProperties(ctx context.Context, method, path string, body any) ([]models.Property, error) {
	resp, err := c.Do(ctx, method, path, body)
	if err != nil {
		return nil, err
	}
	return decodeList[models.Property](resp)
}

func (c *Client) CreateProduct(ctx context.Context, draft models.ProductDraft) (*Response, error) {
	return c.Do(ctx, http.MethodPost, "/product/create", draft)
}

func (c *Client) UpdateProduct(ctx context.Context, id string, draft models.ProductDraft) (*Response, error) {
	return c.Do(ctx, http.MethodPut, "/product/"+url.PathEscape(id), draft)
}

// DeleteProduct sends the owner's credentials in the body. Empty credentials
// are sent as an empty object.
func (c *Client) DeleteProduct(ctx context.Context, id string, creds *Credentials) (*Response, error) {
	var body any = struct{}{}
	if creds != nil {
		body = creds
	}
	return c.Do(ctx, http.MethodDelete, "/product/delete/"+url.PathEscape(id), body)
}

func (c *Client) SetAvailability(ctx context.Context, id string, availability models.Availability) (*Response, error) {
	return c.Do(ctx, http.MethodPut, "/product/"+url.PathEscape(id)+"/availability",
		map[string]string{"availability": string(availability)})
}

func (c *Client) BoostPlans(ctx context.Context) ([]models.BoostPlan, error) {
	resp, err := c.Do(ctx, http.MethodGet, "/boost/plans", nil)
	if err != nil {
		return nil, err
	}
	return decodeList[models.BoostPlan](resp)
}

func (c *Client) InitiateBoost(ctx context.Context, productID, planID string) (*Response, error) {
	return c.Do(ctx, http.MethodPost, "/product/"+url.PathEscape(productID)+"/boost",
		map[string]string{"planId": planID})
}

func (c *Client) CreateInquiry(ctx context.Context, inq models.Inquiry) (*Response, error) {
	return c.Do(ctx, http.MethodPost, "/inquiries", inq)
}

// ListInquiries lists inquiries, optionally for one property.
func (c *Client) ListInquiries(ctx context.Context, propertyID string) ([]models.Inquiry, error) {
	path := "/inquiries"
	if propertyID != "" {
		path += "?propertyId=" + url.QueryEscape(propertyID)
	}
	resp, err := c.Do(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}
	return decodeList[models.Inquiry](resp)
}

func (c *Client) AddFavorite(ctx context.Context, productID string) (*Response, error) {
	return c.Do(ctx, http.MethodPost, "/favorites", models.Favorite{ProductID: productID})
}

func (c *Client) ListFavorites(ctx context.Context) ([]models.Favorite, error) {
	resp, err := c.Do(ctx, http.MethodGet, "/favorites", nil)
	if err != nil {
		return nil, err
	}
	return decodeList[models.Favorite](resp)
}

// UploadImage posts one file as multipart field "file" and returns the URLs
// the backend reports for it.
func (c *Client) UploadImage(ctx context.Context, productID, filename string, r io.Reader) ([]string, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", filename)
	if err != nil {
		return nil, fmt.Errorf("build upload: %w", err)
	}
	if _, err := io.Copy(part, r); err != nil {
		return nil, fmt.Errorf("read upload: %w", err)
	}
	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("build upload: %w", err)
	}

	if productID == "" {
		productID = "1"
	}
	resp, err := c.send(ctx, http.MethodPost, "/product/"+url.PathEscape(productID)+"/images", mw.FormDataContentType(), &buf)
	if err != nil {
		return nil, err
	}
	return uploadedURLs(resp)
}

func uploadedURLs(resp *Response) ([]string, error) {
	var shaped struct {
		URL    string   `json:"url"`
		URLs   []string `json:"urls"`
		Images []string `json:"images"`
	}
	if err := json.Unmarshal(resp.Body, &shaped); err == nil {
		switch {
		case len(shaped.URLs) > 0:
			return shaped.URLs, nil
		case len(shaped.Images) > 0:
			return shaped.Images, nil
		case shaped.URL != "":
			return []string{shaped.URL}, nil
		}
	}
	return decodeList[string](resp)
}
