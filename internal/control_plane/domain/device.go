package domain

import (
	"fmt"
	"net"
	"net/netip"
	"regexp"
	"time"

	"posbridge-server/internal/infra/utils"
)

type DeviceKind string

const (
	DeviceKindLANRegister    DeviceKind = "lan_register"
	DeviceKindEvotorTerminal DeviceKind = "evotor_terminal"
)

// Channel is how commands reach the device.
type Channel string

const (
	ChannelDirect   Channel = "direct"
	ChannelAgent    Channel = "agent"
	ChannelTerminal Channel = "terminal"
)

type TaxSystem string

const (
	TaxSystemOSN              TaxSystem = "osn"
	TaxSystemUSNIncome        TaxSystem = "usn_income"
	TaxSystemUSNIncomeOutcome TaxSystem = "usn_income_outcome"
	TaxSystemENVD             TaxSystem = "envd"
	TaxSystemESN              TaxSystem = "esn"
	TaxSystemPatent           TaxSystem = "patent"
)

var validTaxSystems = map[TaxSystem]bool{
	TaxSystemOSN:              true,
	TaxSystemUSNIncome:        true,
	TaxSystemUSNIncomeOutcome: true,
	TaxSystemENVD:             true,
	TaxSystemESN:              true,
	TaxSystemPatent:           true,
}

var vatinPattern = regexp.MustCompile(`^\d{10,12}$`)

type Device struct {
	ID             ID
	Version        Version
	OrganizationID *ID
	Kind           DeviceKind
	Channel        Channel
	Name           string

	Address       string
	Port          int
	Username      string
	Password      string
	OperatorName  string
	OperatorVATIN string
	TaxSystem     TaxSystem

	PlatformUserID     string
	PlatformDeviceUUID string
	PlatformToken      string

	Health DeviceHealth

	CreatedAt time.Time
	UpdatedAt time.Time
}

// BelongsTo is false for unclaimed devices.
func (d Device) BelongsTo(orgID ID) bool {
	return d.OrganizationID != nil && *d.OrganizationID == orgID
}

func (d Device) IsClaimed() bool {
	return d.OrganizationID != nil
}

func (d Device) HasCredentials() bool {
	return d.Username != ""
}

func (d Device) BaseURL() string {
	return fmt.Sprintf("http://%s", net.JoinHostPort(d.Address, fmt.Sprint(d.Port)))
}

// LinkTo binds an unclaimed device to orgID. Linking twice to the same
// organization is a no-op.
func (d *Device) LinkTo(orgID ID) error {
	if d.OrganizationID != nil {
		if *d.OrganizationID == orgID {
			return nil
		}
		return ErrDeviceAlreadyLinked
	}
	d.OrganizationID = &orgID
	d.Version++
	return nil
}

// MergeFrom copies the mutable attributes of other, keeping identity,
// organization and health.
func (d *Device) MergeFrom(other Device) {
	d.Name = other.Name
	d.Channel = other.Channel
	switch d.Kind {
	case DeviceKindLANRegister:
		d.Address = other.Address
		d.Port = other.Port
		d.Username = other.Username
		d.Password = other.Password
		d.OperatorName = other.OperatorName
		d.OperatorVATIN = other.OperatorVATIN
		d.TaxSystem = other.TaxSystem
	case DeviceKindEvotorTerminal:
		d.PlatformDeviceUUID = other.PlatformDeviceUUID
		if other.PlatformToken != "" {
			d.PlatformToken = other.PlatformToken
		}
	}
	d.Version++
}

func (d Device) Validate() error {
	switch d.Kind {
	case DeviceKindLANRegister:
		return d.validateLAN()
	case DeviceKindEvotorTerminal:
		if d.PlatformUserID == "" {
			return newValidationError("platformUserId", "is required")
		}
		if d.Channel != ChannelTerminal {
			return newValidationError("channel", "terminal devices only accept the terminal channel")
		}
		return nil
	default:
		return newValidationError("kind", "unknown device kind %q", d.Kind)
	}
}

func (d Device) validateLAN() error {
	// IPv4-mapped IPv6 text would turn BaseURL into a bracketed v6 host
	ip, err := netip.ParseAddr(d.Address)
	if err != nil || !ip.Is4() {
		return newValidationError("ip", "%q is not a valid IPv4 address", d.Address)
	}
	if d.Port < 1 || d.Port > 65535 {
		return newValidationError("port", "must be between 1 and 65535")
	}
	if d.OperatorVATIN != "" && !vatinPattern.MatchString(d.OperatorVATIN) {
		return newValidationError("operatorVatin", "must contain 10 to 12 digits")
	}
	if d.TaxSystem != "" && !validTaxSystems[d.TaxSystem] {
		return newValidationError("taxSystem", "unknown tax system %q", d.TaxSystem)
	}
	if d.Channel != ChannelDirect && d.Channel != ChannelAgent {
		return newValidationError("channel", "registers are reached directly or through an agent")
	}
	return nil
}

func NewDeviceBuilder() *deviceBuilder {
	return &deviceBuilder{}
}

type deviceBuilder struct {
	actions []deviceHandler
}

type deviceHandler func(v *Device) error

func (b *deviceBuilder) WithID(value ID) *deviceBuilder {
	b.actions = append(b.actions, func(d *Device) error {
		d.ID = value
		return nil
	})
	return b
}

func (b *deviceBuilder) WithOrganization(value ID) *deviceBuilder {
	b.actions = append(b.actions, func(d *Device) error {
		if value.IsEmpty() {
			return nil
		}
		d.OrganizationID = &value
		return nil
	})
	return b
}

func (b *deviceBuilder) WithName(value string) *deviceBuilder {
	b.actions = append(b.actions, func(d *Device) error {
		d.Name = value
		return nil
	})
	return b
}

func (b *deviceBuilder) WithChannel(value Channel) *deviceBuilder {
	b.actions = append(b.actions, func(d *Device) error {
		d.Channel = value
		return nil
	})
	return b
}

// AsLANRegister sets the network identity of a fiscal register. The channel
// defaults to direct.
func (b *deviceBuilder) AsLANRegister(address string, port int) *deviceBuilder {
	b.actions = append(b.actions, func(d *Device) error {
		d.Kind = DeviceKindLANRegister
		d.Address = address
		d.Port = port
		if d.Channel == "" {
			d.Channel = ChannelDirect
		}
		return nil
	})
	return b
}

func (b *deviceBuilder) WithCredentials(username, password string) *deviceBuilder {
	b.actions = append(b.actions, func(d *Device) error {
		d.Username = username
		d.Password = password
		return nil
	})
	return b
}

func (b *deviceBuilder) WithOperator(name, vatin string) *deviceBuilder {
	b.actions = append(b.actions, func(d *Device) error {
		d.OperatorName = name
		d.OperatorVATIN = vatin
		return nil
	})
	return b
}

func (b *deviceBuilder) WithTaxSystem(value TaxSystem) *deviceBuilder {
	b.actions = append(b.actions, func(d *Device) error {
		d.TaxSystem = value
		return nil
	})
	return b
}

func (b *deviceBuilder) AsEvotorTerminal(userID, deviceUUID, token string) *deviceBuilder {
	b.actions = append(b.actions, func(d *Device) error {
		d.Kind = DeviceKindEvotorTerminal
		d.Channel = ChannelTerminal
		d.PlatformUserID = userID
		d.PlatformDeviceUUID = deviceUUID
		d.PlatformToken = token
		return nil
	})
	return b
}

func (b *deviceBuilder) Build() (Device, error) {
	now := time.Now().UTC()
	result := Device{
		ID:        ID(utils.GenerateUUID()),
		Version:   1,
		Health:    UnknownHealth(),
		CreatedAt: now,
		UpdatedAt: now,
	}
	for _, a := range b.actions {
		if err := a(&result); err != nil {
			return Device{}, err
		}
	}
	if err := result.Validate(); err != nil {
		return Device{}, err
	}
	return result, nil
}
