// Package session keeps per-visitor UI state in a signed cookie: recently
// viewed vehicles, the visitor's contact details and one-shot flash messages.
//
// The helpers only change the request's session. Handlers call Save once,
// before the response body starts, so each response carries one cookie.
package session

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/gorilla/sessions"

	"github.com/leapstack-labs/autohub/internal/enquiry"
)

// Name is the cookie name.
const Name = "autohub"

// MaxRecent caps the recently viewed list.
const MaxRecent = 6

const (
	keyRecent  = "recent"
	keyVisitor = "visitor"
)

// RecentVehicle is the slice of a vehicle kept for the home page.
type RecentVehicle struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Thumbnail string `json:"thumbnail,omitempty"`
	Price     string `json:"price"`
}

// get never returns nil. The store caches the session per request, so every
// helper sees the same values; an undecodable cookie yields the store's fresh
// session, which Save then overwrites.
func get(r *http.Request, store sessions.Store) *sessions.Session {
	sess, _ := store.Get(r, Name)
	if sess == nil {
		sess = sessions.NewSession(store, Name)
		sess.IsNew = true
	}
	return sess
}

// Save writes every session touched during the request.
func Save(w http.ResponseWriter, r *http.Request) error {
	if err := sessions.Save(r, w); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}

func decode(sess *sessions.Session, key string, out any) bool {
	raw, ok := sess.Values[key].(string)
	if !ok || raw == "" {
		return false
	}
	return json.Unmarshal([]byte(raw), out) == nil
}

func encode(sess *sessions.Session, key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return err
	}
	sess.Values[key] = string(raw)
	return nil
}

// Recent returns the recently viewed vehicles, newest first.
func Recent(r *http.Request, store sessions.Store) []RecentVehicle {
	var recent []RecentVehicle
	decode(get(r, store), keyRecent, &recent)
	return recent
}

// PushRecent moves v to the front of the recently viewed list.
func PushRecent(r *http.Request, store sessions.Store, v RecentVehicle) error {
	sess := get(r, store)

	var recent []RecentVehicle
	decode(sess, keyRecent, &recent)

	next := make([]RecentVehicle, 0, MaxRecent)
	next = append(next, v)
	for _, item := range recent {
		if len(next) == MaxRecent {
			break
		}
		if item.ID != v.ID {
			next = append(next, item)
		}
	}

	if err := encode(sess, keyRecent, next); err != nil {
		return fmt.Errorf("failed to encode recently viewed: %w", err)
	}
	return nil
}

// Visitor returns the contact details remembered from the last enquiry.
func Visitor(r *http.Request, store sessions.Store) (enquiry.Contact, bool) {
	var c enquiry.Contact
	ok := decode(get(r, store), keyVisitor, &c)
	return c, ok
}

// RememberVisitor stores the visitor's name, email and phone. The message is
// specific to one vehicle and is not kept.
func RememberVisitor(r *http.Request, store sessions.Store, c enquiry.Contact) error {
	sess := get(r, store)
	c = c.Trimmed()
	c.Message = ""
	if err := encode(sess, keyVisitor, c); err != nil {
		return fmt.Errorf("failed to encode visitor: %w", err)
	}
	return nil
}

// AddFlash queues a message for the next page view.
func AddFlash(r *http.Request, store sessions.Store, msg string) {
	get(r, store).AddFlash(msg)
}

// Flashes returns and clears the queued messages. The clearing only sticks
// once the session is saved.
func Flashes(r *http.Request, store sessions.Store) []string {
	raw := get(r, store).Flashes()
	if len(raw) == 0 {
		return nil
	}

	msgs := make([]string, 0, len(raw))
	for _, f := range raw {
		if s, ok := f.(string); ok {
			msgs = append(msgs, s)
		}
	}
	return msgs
}
