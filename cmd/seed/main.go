package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// seed loads users and rooms from a YAML file into a running gateway.
//
//	usuarios:
//	  - name: Ana
//	salas:
//	  - name: A1
//	    availability: true
func main() {
	file := flag.String("file", "provision/seed.yml", "YAML file with usuarios and salas lists")
	api := flag.String("api", "http://localhost:3000", "gateway base URL")
	user := flag.String("user", os.Getenv("ADMIN_USERNAME"), "operator username (write protection only)")
	pass := flag.String("pass", os.Getenv("ADMIN_PASSWORD"), "operator password (write protection only)")
	flag.Parse()

	seed, err := loadSeed(*file)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to read %s: %v\n", *file, err)
		os.Exit(1)
	}
	if len(seed.Users)+len(seed.Rooms) == 0 {
		fmt.Println("Nothing to seed.")
		return
	}

	cl := &client{base: strings.TrimRight(*api, "/"), http: &http.Client{Timeout: 15 * time.Second}}
	if *user != "" && *pass != "" {
		if err := cl.login(*user, *pass); err != nil {
			fmt.Fprintf(os.Stderr, "Login failed: %v\n", err)
			os.Exit(2)
		}
	}

	if failed := cl.seed(seed, os.Stdout, os.Stderr); failed > 0 {
		os.Exit(2)
	}
}

// Seed is the content of a seed file.
type Seed struct {
	Users []map[string]any `yaml:"usuarios"`
	Rooms []map[string]any `yaml:"salas"`
}

func loadSeed(path string) (Seed, error) {
	var s Seed
	b, err := os.ReadFile(path)
	if err != nil {
		return s, err
	}
	if err := yaml.Unmarshal(b, &s); err != nil {
		return s, err
	}
	return s, nil
}

type client struct {
	base  string
	token string
	http  *http.Client
}

// seed posts every entry and returns how many failed.
func (cl *client) seed(s Seed, out, errOut io.Writer) int {
	failed := 0
	batches := []struct {
		path  string
		items []map[string]any
	}{
		{"/usuarios", s.Users},
		{"/salas", s.Rooms},
	}
	for _, b := range batches {
		for _, doc := range b.items {
			id, err := cl.post(b.path, doc)
			if err != nil {
				failed++
				fmt.Fprintf(errOut, "Failed to add %s entry %v: %v\n", b.path, doc, err)
				continue
			}
			fmt.Fprintf(out, "Added %s/%s\n", b.path, id)
		}
	}
	return failed
}

func (cl *client) login(user, pass string) error {
	data, _ := json.Marshal(map[string]string{"username": user, "password": pass})
	resp, err := cl.http.Post(cl.base+"/auth/login", "application/json", bytes.NewReader(data))
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("status=%d body=%s", resp.StatusCode, strings.TrimSpace(string(b)))
	}
	var out struct {
		AccessToken string `json:"access_token"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return err
	}
	if out.AccessToken == "" {
		return errors.New("no access_token in response")
	}
	cl.token = out.AccessToken
	return nil
}

func (cl *client) post(path string, doc map[string]any) (string, error) {
	b, err := json.Marshal(doc)
	if err != nil {
		return "", err
	}
	req, err := http.NewRequest(http.MethodPost, cl.base+path, bytes.NewReader(b))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	if cl.token != "" {
		req.Header.Set("Authorization", "Bearer "+cl.token)
	}

	resp, err := cl.http.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusCreated {
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("status=%d body=%s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	var created struct {
		ID string `json:"id"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		return "", err
	}
	return created.ID, nil
}
