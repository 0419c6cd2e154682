package auth

import (
	"errors"

	"github.com/andresuchdata/supplychain-whatif/backend-go/internal/domain"
)

var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrInvalidToken       = errors.New("invalid token")
)

// Role tags a session with what the user may see and change
type Role string

const (
	RoleAdmin     Role = "admin"
	RoleSupplier  Role = "supplier"
	RoleWarehouse Role = "warehouse"
	RoleCustomer  Role = "customer"
)

var kindRoles = map[domain.NodeKind]Role{
	domain.KindSupplier:  RoleSupplier,
	domain.KindWarehouse: RoleWarehouse,
	domain.KindCustomer:  RoleCustomer,
}

// adminUserID is the session id of the administrator
const adminUserID = "admin"

// Session identifies a logged in user. Node users carry the id of their node
// and the company it belongs to.
type Session struct {
	UserID    string `json:"id"`
	Name      string `json:"name"`
	Role      Role   `json:"role"`
	CompanyID string `json:"companyId,omitempty"`
}

// Admin is the fixed administrator login pair
type Admin struct {
	Username string
	Password string
}

// Authenticate matches the pair against the administrator, then against the
// credentials of every node in list order: companies, then suppliers,
// warehouses and customers within each company
func Authenticate(admin Admin, companies []domain.Company, username, password string) (Session, error) {
	if username == "" || password == "" {
		return Session{}, ErrInvalidCredentials
	}
	if username == admin.Username && password == admin.Password {
		return Session{UserID: adminUserID, Name: "Admin", Role: RoleAdmin}, nil
	}

	for _, c := range companies {
		for _, n := range c.Data.Nodes() {
			creds := n.Credentials()
			if creds.Username == username && creds.Password == password {
				return Session{
					UserID:    n.ID(),
					Name:      n.Name(),
					Role:      kindRoles[n.Kind],
					CompanyID: c.ID,
				}, nil
			}
		}
	}
	return Session{}, ErrInvalidCredentials
}

func (s Session) IsAdmin() bool { return s.Role == RoleAdmin }

// CanRead reports whether the session may view the company
func (s Session) CanRead(companyID string) bool {
	return s.IsAdmin() || s.CompanyID == companyID
}

// CanEditWarehouse reports whether the session may change the targets of
// one warehouse
func (s Session) CanEditWarehouse(companyID, warehouseID string) bool {
	if s.IsAdmin() {
		return true
	}
	return s.Role == RoleWarehouse && s.CompanyID == companyID && s.UserID == warehouseID
}
