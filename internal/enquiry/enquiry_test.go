package enquiry

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validContact() Contact {
	return Contact{
		Name:    "Thandi Nkosi",
		Email:   "thandi@example.co.za",
		Phone:   "082 555 0199",
		Message: DefaultMessage("2019 Toyota Corolla 1.8 Prestige"),
	}
}

func TestDefaultMessage(t *testing.T) {
	assert.Equal(t,
		"Hi, I'm interested in the 2019 Toyota Corolla. Please contact me with more information.",
		DefaultMessage("2019 Toyota Corolla"))
}

func TestNew_TrimsFields(t *testing.T) {
	e := New("8712345", "Corolla", "Cape Auto Centre", Contact{
		Name:    "  Thandi  ",
		Email:   " thandi@example.co.za\n",
		Phone:   "\t082 555 0199",
		Message: " hello ",
	})

	assert.Equal(t, "8712345", e.VehicleID)
	assert.Equal(t, "Thandi", e.Name)
	assert.Equal(t, "thandi@example.co.za", e.Email)
	assert.Equal(t, "082 555 0199", e.Phone)
	assert.Equal(t, "hello", e.Message)
	assert.Equal(t, Contact{Name: "Thandi", Email: "thandi@example.co.za", Phone: "082 555 0199", Message: "hello"}, e.Contact())
}

func TestEnquiry_Validate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(c *Contact)
		id     string
		want   ValidationErrors
	}{
		{
			name:   "valid",
			modify: func(*Contact) {},
			id:     "8712345",
		},
		{
			name:   "all empty",
			modify: func(c *Contact) { *c = Contact{} },
			id:     "8712345",
			want: ValidationErrors{
				"name":    "Name is required",
				"email":   "Email is required",
				"phone":   "Phone number is required",
				"message": "Message is required",
			},
		},
		{
			name:   "whitespace only counts as empty",
			modify: func(c *Contact) { c.Name = "   " },
			id:     "8712345",
			want:   ValidationErrors{"name": "Name is required"},
		},
		{
			name:   "bad email",
			modify: func(c *Contact) { c.Email = "thandi at example" },
			id:     "8712345",
			want:   ValidationErrors{"email": "Enter a valid email address"},
		},
		{
			name:   "email without domain dot",
			modify: func(c *Contact) { c.Email = "thandi@localhost" },
			id:     "8712345",
			want:   ValidationErrors{"email": "Enter a valid email address"},
		},
		{
			name:   "display name email rejected",
			modify: func(c *Contact) { c.Email = "Thandi <thandi@example.co.za>" },
			id:     "8712345",
			want:   ValidationErrors{"email": "Enter a valid email address"},
		},
		{
			name:   "short phone",
			modify: func(c *Contact) { c.Phone = "082 55" },
			id:     "8712345",
			want:   ValidationErrors{"phone": "Enter a valid phone number"},
		},
		{
			name:   "phone with letters",
			modify: func(c *Contact) { c.Phone = "082 CALL ME" },
			id:     "8712345",
			want:   ValidationErrors{"phone": "Enter a valid phone number"},
		},
		{
			name:   "international phone",
			modify: func(c *Contact) { c.Phone = "+27 (82) 555-0199" },
			id:     "8712345",
		},
		{
			name:   "long message",
			modify: func(c *Contact) { c.Message = strings.Repeat("a", MaxMessageLength+1) },
			id:     "8712345",
			want:   ValidationErrors{"message": "Message is too long"},
		},
		{
			name:   "long name",
			modify: func(c *Contact) { c.Name = strings.Repeat("n", MaxNameLength+1) },
			id:     "8712345",
			want:   ValidationErrors{"name": "Name is too long"},
		},
		{
			name:   "missing vehicle",
			modify: func(*Contact) {},
			want:   ValidationErrors{"vehicle": "Vehicle is required"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := validContact()
			tt.modify(&c)

			err := New(tt.id, "Corolla", "Cape Auto Centre", c).Validate()
			if tt.want == nil {
				assert.NoError(t, err)
				return
			}

			var verrs ValidationErrors
			require.ErrorAs(t, err, &verrs)
			assert.Equal(t, tt.want, verrs)
		})
	}
}

func TestValidationErrors_Error(t *testing.T) {
	err := ValidationErrors{
		"phone": "Phone number is required",
		"email": "Email is required",
	}
	assert.Equal(t, "invalid enquiry: email: Email is required; phone: Phone number is required", err.Error())
}
