package supabase

import (
	"strings"

	"github.com/supabase-community/supabase-go"
)

type Client struct {
	Supabase *supabase.Client
	URL      string
}

func NewClient(supabaseURL, key string) (*Client, error) {
	baseURL := strings.TrimSuffix(supabaseURL, "/")
	client, err := supabase.NewClient(baseURL, key, nil)
	if err != nil {
		return nil, err
	}

	return &Client{
		Supabase: client,
		URL:      baseURL,
	}, nil
}
