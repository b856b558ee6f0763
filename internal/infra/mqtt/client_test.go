package mqtt_test

import (
	"encoding/json"
	"errors"
	"time"

	"posbridge-server/internal/infra/mqtt"

	paho "github.com/eclipse/paho.mqtt.golang"
	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"
)

type fakeToken struct {
	paho.Token
	completed bool
	err       error
}

func (t *fakeToken) WaitTimeout(time.Duration) bool { return t.completed }
func (t *fakeToken) Wait() bool                     { return t.completed }
func (t *fakeToken) Error() error                   { return t.err }

type published struct {
	topic    string
	qos      byte
	retained bool
	payload  []byte
}

type fakePaho struct {
	paho.Client
	token        *fakeToken
	published    []published
	disconnected bool
}

func (c *fakePaho) Publish(topic string, qos byte, retained bool, payload interface{}) paho.Token {
	c.published = append(c.published, published{topic, qos, retained, payload.([]byte)})
	return c.token
}

func (c *fakePaho) Disconnect(uint) {
	c.disconnected = true
}

var _ = ginkgo.Describe("MQTT Client", func() {
	var (
		raw    *fakePaho
		client *mqtt.SimpleClient
	)

	ginkgo.BeforeEach(func() {
		raw = &fakePaho{token: &fakeToken{completed: true}}
		client = mqtt.NewSimpleClientWithPaho(raw)
	})

	ginkgo.Context("NewSimpleClient", func() {
		ginkgo.It("should reject options without a broker", func() {
			_, err := mqtt.NewSimpleClient(mqtt.SimpleClientOpts{ClientID: "api"})
			gomega.Expect(err).To(gomega.MatchError(gomega.ContainSubstring("broker")))
		})

		ginkgo.It("should reject options without a client id", func() {
			_, err := mqtt.NewSimpleClient(mqtt.SimpleClientOpts{Broker: "tcp://localhost:1883"})
			gomega.Expect(err).To(gomega.MatchError(gomega.ContainSubstring("client id")))
		})
	})

	ginkgo.Context("Publish", func() {
		ginkgo.It("should publish the JSON encoded message at least once", func() {
			err := client.Publish("posbridge/agents/org1/tasks", map[string]string{"taskId": "t-1"})
			gomega.Expect(err).NotTo(gomega.HaveOccurred())

			gomega.Expect(raw.published).To(gomega.HaveLen(1))
			sent := raw.published[0]
			gomega.Expect(sent.topic).To(gomega.Equal("posbridge/agents/org1/tasks"))
			gomega.Expect(sent.qos).To(gomega.Equal(byte(1)))
			gomega.Expect(sent.retained).To(gomega.BeFalse())

			var body map[string]string
			gomega.Expect(json.Unmarshal(sent.payload, &body)).To(gomega.Succeed())
			gomega.Expect(body).To(gomega.HaveKeyWithValue("taskId", "t-1"))
		})

		ginkgo.When("the broker does not confirm in time", func() {
			ginkgo.It("should return a timeout error", func() {
				raw.token.completed = false

				err := client.Publish("topic", "hello")
				gomega.Expect(err).To(gomega.MatchError(mqtt.ErrPublishTimeout))
			})
		})

		ginkgo.When("the broker rejects the message", func() {
			ginkgo.It("should wrap the broker error", func() {
				raw.token.err = errors.New("not authorized")

				err := client.Publish("topic", "hello")
				gomega.Expect(err).To(gomega.MatchError(gomega.ContainSubstring("not authorized")))
			})
		})

		ginkgo.When("the message cannot be encoded", func() {
			ginkgo.It("should fail before reaching the broker", func() {
				err := client.Publish("topic", make(chan int))
				gomega.Expect(err).To(gomega.HaveOccurred())
				gomega.Expect(raw.published).To(gomega.BeEmpty())
			})
		})
	})

	ginkgo.Context("Disconnect", func() {
		ginkgo.It("should disconnect the underlying client", func() {
			client.Disconnect()
			gomega.Expect(raw.disconnected).To(gomega.BeTrue())
		})
	})
})
