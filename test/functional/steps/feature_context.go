package steps

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"posbridge-server/test/functional/driver"

	"github.com/cucumber/godog"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

type PaginatedResponse[T any] struct {
	Data       []T `json:"data"`
	Pagination struct {
		Page       int `json:"page"`
		Limit      int `json:"limit"`
		Total      int `json:"total"`
		TotalPages int `json:"total_pages"`
	} `json:"pagination"`
}

type FeatureContext struct {
	server       *driver.Server
	apiDriver    *driver.APIDriver
	response     *http.Response
	responseData map[string]any
	deviceID     string
	deviceOrg    string
	taskID       string
	saleCommand  string
	orgs         map[string]string
	orders       map[string]string
	require      *require.Assertions
	t            godog.TestingT
}

func NewFeatureContext(server *driver.Server) *FeatureContext {
	return &FeatureContext{
		server:    server,
		apiDriver: driver.NewAPIDriver(server.URL),
	}
}

func (fc *FeatureContext) RegisterSteps(ctx *godog.ScenarioContext) {
	// Generic steps
	ctx.Then(`^the response status code should be (\d+)$`, fc.theResponseStatusCodeShouldBe)
	ctx.Then(`^the response field "([^"]*)" should be "([^"]*)"$`, fc.theResponseFieldShouldBe)
	ctx.Then(`^the response should not mention "([^"]*)"$`, fc.theResponseShouldNotMention)

	// Fiscal device steps
	ctx.Given(`^a register of organization "([^"]*)" reached through the "([^"]*)" channel$`, fc.aRegisterOfOrganizationReachedThroughTheChannel)
	ctx.Given(`^the register reports its shift as "([^"]*)"$`, fc.theRegisterReportsItsShiftAs)
	ctx.When(`^organization "([^"]*)" asks for the shift status of the register$`, fc.organizationAsksForTheShiftStatusOfTheRegister)
	ctx.When(`^organization "([^"]*)" opens the shift of the register$`, fc.organizationOpensTheShiftOfTheRegister)
	ctx.When(`^organization "([^"]*)" reads the health of the register$`, fc.organizationReadsTheHealthOfTheRegister)
	ctx.When(`^organization "([^"]*)" dispatches "([^"]*)" to the register$`, fc.organizationDispatchesToTheRegister)
	ctx.Then(`^the register should have received (\d+) requests?$`, fc.theRegisterShouldHaveReceivedRequests)

	// Agent task steps
	ctx.When(`^an agent of organization "([^"]*)" fetches the next task of the register$`, fc.anAgentOfOrganizationFetchesTheNextTask)
	ctx.When(`^an agent without organization fetches the next task of the register for "([^"]*)"$`, fc.anUnscopedAgentFetchesTheNextTaskFor)
	ctx.When(`^the agent of organization "([^"]*)" reports the task as "([^"]*)"$`, fc.theAgentReportsTheTaskAs)
	ctx.Then(`^the register should be "([^"]*)"$`, fc.theRegisterShouldBe)

	// Terminal and sale command steps
	ctx.Given(`^an order "([^"]*)" of organization "([^"]*)" with (\d+) "([^"]*)" at (\d+)$`, fc.anOrderOfOrganizationWith)
	ctx.Given(`^a terminal of user "([^"]*)" linked to organization "([^"]*)"$`, fc.aTerminalOfUserLinkedToOrganization)
	ctx.When(`^the platform registers a token for user "([^"]*)" with secret "([^"]*)"$`, fc.thePlatformRegistersATokenForUser)
	ctx.When(`^the cashier "([^"]*)" of organization "([^"]*)" requests a sale for order "([^"]*)"$`, fc.theCashierRequestsASaleForOrder)
	ctx.When(`^the terminal of organization "([^"]*)" polls for pending sale commands$`, fc.theTerminalPollsForPendingSaleCommands)
	ctx.When(`^the terminal of organization "([^"]*)" acknowledges the sale command as "([^"]*)"$`, fc.theTerminalAcknowledgesTheSaleCommandAs)
	ctx.When(`^the terminal of organization "([^"]*)" acknowledges the sale command as "([^"]*)" with error "([^"]*)"$`, fc.theTerminalAcknowledgesTheSaleCommandWithError)
	ctx.When(`^organization "([^"]*)" reads the sale command$`, fc.organizationReadsTheSaleCommand)
	ctx.Then(`^the sale command order should hold (\d+) "([^"]*)"$`, fc.theSaleCommandOrderShouldHold)

	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		fc.t = godog.T(ctx)
		fc.require = require.New(fc.t)

		fc.reset()
		return ctx, nil
	})

	ctx.After(func(ctx context.Context, sc *godog.Scenario, err error) (context.Context, error) {
		if fc.response != nil {
			fc.response.Body.Close()
		}
		return ctx, err
	})
}

func (fc *FeatureContext) reset() {
	fc.response = nil
	fc.responseData = nil
	fc.deviceID = ""
	fc.deviceOrg = ""
	fc.taskID = ""
	fc.saleCommand = ""
	fc.orgs = make(map[string]string)
	fc.orders = make(map[string]string)
	fc.server.Register.SetShiftState("closed")
}

// keep stores the response and decodes a JSON object body when there is one.
func (fc *FeatureContext) keep(response *http.Response, err error) error {
	if err != nil {
		return err
	}
	if fc.response != nil {
		fc.response.Body.Close()
	}
	fc.response = response
	fc.responseData = nil

	body, err := io.ReadAll(response.Body)
	if err != nil {
		return err
	}
	if len(body) == 0 {
		return nil
	}

	var data map[string]any
	if err := json.Unmarshal(body, &data); err != nil {
		return fmt.Errorf("decoding response body %q: %w", body, err)
	}
	fc.responseData = data
	return nil
}

func (fc *FeatureContext) stringField(name string) string {
	fc.require.NotNil(fc.responseData, "response has no body")
	value, ok := fc.responseData[name].(string)
	fc.require.True(ok, "field %s is missing in %v", name, fc.responseData)
	return value
}

// org maps the organization named in a scenario to one unique to that
// scenario, since every scenario shares the same database.
func (fc *FeatureContext) org(name string) string {
	return scoped(fc.orgs, name)
}

func (fc *FeatureContext) order(name string) string {
	return scoped(fc.orders, name)
}

func scoped(ids map[string]string, name string) string {
	if id, ok := ids[name]; ok {
		return id
	}
	id := name + "-" + uuid.NewString()[:8]
	ids[name] = id
	return id
}

func (fc *FeatureContext) callerOf(organization string) driver.Caller {
	return driver.Caller{OrganizationID: fc.org(organization)}
}
