package steps

import (
	"net/http"
)

func (fc *FeatureContext) aRegisterOfOrganizationReachedThroughTheChannel(organization, channel string) error {
	ip, port := fc.server.Register.Address()

	err := fc.keep(fc.apiDriver.CreateFiscalDevice(fc.callerOf(organization), map[string]any{
		"name":    "Front desk",
		"ip":      ip,
		"port":    port,
		"channel": channel,
	}))
	if err != nil {
		return err
	}

	fc.require.Equal(http.StatusCreated, fc.response.StatusCode, "creating register: %v", fc.responseData)
	fc.deviceID = fc.stringField("id")
	fc.deviceOrg = organization
	return nil
}

func (fc *FeatureContext) theRegisterReportsItsShiftAs(state string) error {
	fc.server.Register.SetShiftState(state)
	return nil
}

func (fc *FeatureContext) organizationAsksForTheShiftStatusOfTheRegister(organization string) error {
	return fc.keep(fc.apiDriver.GetShiftStatus(fc.callerOf(organization), fc.deviceID))
}

func (fc *FeatureContext) organizationOpensTheShiftOfTheRegister(organization string) error {
	return fc.keep(fc.apiDriver.OpenShift(fc.callerOf(organization), fc.deviceID))
}

func (fc *FeatureContext) organizationReadsTheHealthOfTheRegister(organization string) error {
	return fc.keep(fc.apiDriver.GetHealth(fc.callerOf(organization), fc.deviceID))
}

func (fc *FeatureContext) organizationDispatchesToTheRegister(organization, commandType string) error {
	return fc.keep(fc.apiDriver.DispatchCommand(fc.callerOf(organization), fc.deviceID, commandType))
}

func (fc *FeatureContext) theRegisterShouldHaveReceivedRequests(count int) error {
	fc.require.Equal(count, fc.server.Register.Requests())
	return nil
}
