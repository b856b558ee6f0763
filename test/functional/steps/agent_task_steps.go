package steps

import (
	"net/http"

	"posbridge-server/test/functional/driver"
)

func (fc *FeatureContext) anAgentOfOrganizationFetchesTheNextTask(organization string) error {
	org := fc.org(organization)
	caller := driver.Caller{Bearer: driver.AgentToken(org)}
	return fc.fetchNextTask(caller, "")
}

func (fc *FeatureContext) anUnscopedAgentFetchesTheNextTaskFor(organization string) error {
	caller := driver.Caller{Bearer: driver.AgentToken("")}
	return fc.fetchNextTask(caller, fc.org(organization))
}

func (fc *FeatureContext) fetchNextTask(caller driver.Caller, organizationID string) error {
	if err := fc.keep(fc.apiDriver.FetchNextTask(caller, organizationID, fc.deviceID)); err != nil {
		return err
	}
	if fc.response.StatusCode == http.StatusOK {
		fc.taskID = fc.stringField("id")
	}
	return nil
}

func (fc *FeatureContext) theAgentReportsTheTaskAs(organization, status string) error {
	fc.require.NotEmpty(fc.taskID, "no task was fetched")

	caller := driver.Caller{Bearer: driver.AgentToken(fc.org(organization))}
	return fc.keep(fc.apiDriver.ReportTaskStatus(caller, fc.taskID, map[string]any{"status": status}))
}

func (fc *FeatureContext) theRegisterShouldBe(status string) error {
	if err := fc.organizationReadsTheHealthOfTheRegister(fc.deviceOrg); err != nil {
		return err
	}
	fc.require.Equal(http.StatusOK, fc.response.StatusCode)
	fc.require.Equal(status, fc.stringField("status"))
	return nil
}
