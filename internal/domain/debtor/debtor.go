package debtor

import (
	"regexp"
	"strings"

	"github.com/google/uuid"
	"github.com/nasiya/backend/internal/domain/shared"
)

// DefaultRole is assigned when a debtor is created without an explicit role
const DefaultRole = "debtor"

// PhoneNumber is a contact number attached to a debtor
type PhoneNumber struct {
	ID     uuid.UUID
	Number string
}

// Debtor is a customer who bought goods on installment credit.
// It is the aggregate root for debtor profile operations; the goods
// themselves live in the loan aggregate and reference the debtor by ID.
type Debtor struct {
	shared.SellerAggregateRoot
	Name         string
	Address      string
	Note         string
	Role         string
	PhoneNumbers []PhoneNumber
	Images       []string
}

// NewDebtor creates a new debtor owned by the given seller.
// At least one phone number is required.
func NewDebtor(sellerID uuid.UUID, name string, phoneNumbers []string) (*Debtor, error) {
	if sellerID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_SELLER_ID", "Seller ID cannot be empty")
	}
	if err := validateName(name); err != nil {
		return nil, err
	}

	phones, err := buildPhoneNumbers(phoneNumbers)
	if err != nil {
		return nil, err
	}

	return &Debtor{
		SellerAggregateRoot: shared.NewSellerAggregateRoot(sellerID),
		Name:                strings.TrimSpace(name),
		Role:                DefaultRole,
		PhoneNumbers:        phones,
		Images:              make([]string, 0),
	}, nil
}

// SetName updates the debtor's name
func (d *Debtor) SetName(name string) error {
	if err := validateName(name); err != nil {
		return err
	}

	d.Name = strings.TrimSpace(name)
	d.touch()

	return nil
}

// SetAddress updates the debtor's address
func (d *Debtor) SetAddress(address string) error {
	if len(address) > 500 {
		return shared.NewDomainError("INVALID_ADDRESS", "Address cannot exceed 500 characters")
	}

	d.Address = strings.TrimSpace(address)
	d.touch()

	return nil
}

// SetNote updates the free-form note
func (d *Debtor) SetNote(note string) error {
	if len(note) > 2000 {
		return shared.NewDomainError("INVALID_NOTE", "Note cannot exceed 2000 characters")
	}

	d.Note = note
	d.touch()

	return nil
}

// SetRole updates the debtor's role label
func (d *Debtor) SetRole(role string) error {
	role = strings.TrimSpace(role)
	if role == "" {
		role = DefaultRole
	}
	if len(role) > 100 {
		return shared.NewDomainError("INVALID_ROLE", "Role cannot exceed 100 characters")
	}

	d.Role = role
	d.touch()

	return nil
}

// SetPhoneNumbers replaces the phone number list.
// The list may never become empty.
func (d *Debtor) SetPhoneNumbers(numbers []string) error {
	phones, err := buildPhoneNumbers(numbers)
	if err != nil {
		return err
	}

	d.PhoneNumbers = phones
	d.touch()

	return nil
}

// SetImages replaces the image URL list
func (d *Debtor) SetImages(urls []string) error {
	for _, u := range urls {
		if len(u) > 500 {
			return shared.NewDomainError("INVALID_IMAGE_URL", "Image URL cannot exceed 500 characters")
		}
	}

	images := make([]string, 0, len(urls))
	for _, u := range urls {
		if strings.TrimSpace(u) != "" {
			images = append(images, u)
		}
	}

	d.Images = images
	d.touch()

	return nil
}

func (d *Debtor) touch() {
	d.Touch()
}

var phoneRegex = regexp.MustCompile(`^\+?[0-9][0-9 \-()]{3,30}$`)

func buildPhoneNumbers(numbers []string) ([]PhoneNumber, error) {
	cleaned := make([]PhoneNumber, 0, len(numbers))
	seen := make(map[string]bool)
	for _, n := range numbers {
		n = strings.TrimSpace(n)
		if n == "" {
			continue
		}
		if !phoneRegex.MatchString(n) {
			return nil, shared.NewDomainError("INVALID_PHONE", "Invalid phone number format: "+n)
		}
		if seen[n] {
			continue
		}
		seen[n] = true
		cleaned = append(cleaned, PhoneNumber{ID: uuid.New(), Number: n})
	}

	if len(cleaned) == 0 {
		return nil, shared.NewDomainError("PHONE_REQUIRED", "At least one phone number is required")
	}

	return cleaned, nil
}

func validateName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Name cannot be empty")
	}
	if len(name) > 200 {
		return shared.NewDomainError("INVALID_NAME", "Name cannot exceed 200 characters")
	}
	return nil
}
