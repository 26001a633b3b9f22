package database

import (
	"net/url"
	"testing"

	"github.com/duccv/whereisit/config"
)

func TestBuildMongoURI(t *testing.T) {
	m := NewMongoDB(&config.MongoConfig{
		Scheme:   "mongodb+srv",
		Host:     "cluster0.example.mongodb.net",
		AppName:  "Cluster0",
		Username: "alice",
		Password: "p@ss:word/",
		Database: "whereIsIt",
	})

	u, err := url.Parse(m.buildMongoURI())
	if err != nil {
		t.Fatalf("built URI does not parse: %v", err)
	}
	if u.Scheme != "mongodb+srv" || u.Host != "cluster0.example.mongodb.net" {
		t.Fatalf("unexpected URI %s", u)
	}
	if pass, _ := u.User.Password(); u.User.Username() != "alice" || pass != "p@ss:word/" {
		t.Fatalf("credentials not preserved: %s", u.User)
	}
	q := u.Query()
	if q.Get("retryWrites") != "true" || q.Get("w") != "majority" || q.Get("appName") != "Cluster0" {
		t.Fatalf("unexpected query %v", q)
	}
}

func TestBuildMongoURIPrefersExplicitURI(t *testing.T) {
	m := NewMongoDB(&config.MongoConfig{URI: "mongodb://localhost:27017", Host: "ignored"})
	if got := m.buildMongoURI(); got != "mongodb://localhost:27017" {
		t.Fatalf("buildMongoURI = %q", got)
	}
}
