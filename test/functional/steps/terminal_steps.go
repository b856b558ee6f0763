package steps

import (
	"context"
	"fmt"
	"net/http"

	"posbridge-server/internal/control_plane/domain"
	"posbridge-server/test/functional/driver"

	"github.com/google/uuid"
)

func (fc *FeatureContext) anOrderOfOrganizationWith(orderName, organization string, quantity int, item string, price int) error {
	total := float64(quantity * price)
	return fc.server.SeedOrder(context.Background(), domain.Order{
		ID:             domain.ID(fc.order(orderName)),
		OrganizationID: domain.ID(fc.org(organization)),
		Status:         "open",
		Total:          total,
		Items: []domain.OrderItem{
			{Name: item, Quantity: float64(quantity), Price: float64(price), Total: total},
		},
	})
}

func (fc *FeatureContext) aTerminalOfUserLinkedToOrganization(user, organization string) error {
	err := fc.keep(fc.apiDriver.RegisterTerminalToken(driver.Caller{Bearer: driver.WebhookSecret},
		user, uuid.NewString(), "platform-token"))
	if err != nil {
		return err
	}
	fc.require.Equal(http.StatusOK, fc.response.StatusCode, "registering token: %v", fc.responseData)
	fc.deviceID = fc.stringField("deviceId")

	if err := fc.keep(fc.apiDriver.LinkTerminal(fc.callerOf(organization), fc.deviceID)); err != nil {
		return err
	}
	fc.require.Equal(http.StatusOK, fc.response.StatusCode, "linking terminal: %v", fc.responseData)
	fc.deviceOrg = organization
	return nil
}

func (fc *FeatureContext) thePlatformRegistersATokenForUser(user, secret string) error {
	err := fc.keep(fc.apiDriver.RegisterTerminalToken(driver.Caller{Bearer: secret},
		user, uuid.NewString(), "platform-token"))
	if err != nil {
		return err
	}
	if fc.response.StatusCode == http.StatusOK {
		fc.deviceID = fc.stringField("deviceId")
	}
	return nil
}

func (fc *FeatureContext) theCashierRequestsASaleForOrder(cashier, organization, orderName string) error {
	caller := driver.Caller{OrganizationID: fc.org(organization), UserID: cashier}
	if err := fc.keep(fc.apiDriver.EnqueueSaleCommand(caller, fc.order(orderName))); err != nil {
		return err
	}
	if fc.response.StatusCode == http.StatusCreated {
		fc.saleCommand = fc.stringField("id")
	}
	return nil
}

func (fc *FeatureContext) theTerminalPollsForPendingSaleCommands(organization string) error {
	if err := fc.keep(fc.apiDriver.PollSaleCommand(fc.callerOf(organization))); err != nil {
		return err
	}
	if fc.response.StatusCode == http.StatusOK {
		fc.require.Equal(fc.saleCommand, fc.stringField("id"))
	}
	return nil
}

func (fc *FeatureContext) theTerminalAcknowledgesTheSaleCommandAs(organization, status string) error {
	return fc.theTerminalAcknowledgesTheSaleCommandWithError(organization, status, "")
}

func (fc *FeatureContext) theTerminalAcknowledgesTheSaleCommandWithError(organization, status, message string) error {
	fc.require.NotEmpty(fc.saleCommand, "no sale command was enqueued")
	return fc.keep(fc.apiDriver.AcknowledgeSaleCommand(fc.callerOf(organization), fc.saleCommand, status, message))
}

func (fc *FeatureContext) organizationReadsTheSaleCommand(organization string) error {
	return fc.keep(fc.apiDriver.GetSaleCommand(fc.callerOf(organization), fc.saleCommand))
}

func (fc *FeatureContext) theSaleCommandOrderShouldHold(quantity int, item string) error {
	fc.require.NotNil(fc.responseData, "response has no body")
	order, ok := fc.responseData["order"].(map[string]any)
	fc.require.True(ok, "order snapshot is missing in %v", fc.responseData)
	items, ok := order["items"].([]any)
	fc.require.True(ok, "order snapshot has no items: %v", order)

	for _, raw := range items {
		line, ok := raw.(map[string]any)
		if ok && line["name"] == item {
			fc.require.Equal(float64(quantity), line["qty"], "quantity of %s", item)
			return nil
		}
	}
	return fmt.Errorf("item %s is not part of the snapshot %v", item, items)
}
