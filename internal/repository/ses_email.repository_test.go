package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/stretchr/testify/require"
)

type fakeSesClient struct {
	inputs []*sesv2.SendEmailInput
	err    error
}

func (f *fakeSesClient) SendEmail(ctx context.Context, params *sesv2.SendEmailInput, optFns ...func(*sesv2.Options)) (*sesv2.SendEmailOutput, error) {
	f.inputs = append(f.inputs, params)
	if f.err != nil {
		return nil, f.err
	}
	return &sesv2.SendEmailOutput{MessageId: aws.String("msg-1")}, nil
}

func Test_emailRepositoryHandler_SendEmail(t *testing.T) {
	t.Run("builds html message", func(t *testing.T) {
		client := &fakeSesClient{}
		h := &emailRepositoryHandler{client: client, fromEmail: "screens@example.com"}

		err := h.SendEmail(context.Background(), []string{"a@example.com", "b@example.com"}, "daily screen", "<pre>hi</pre>")
		require.NoError(t, err)

		require.Len(t, client.inputs, 1)
		in := client.inputs[0]
		require.Equal(t, "screens@example.com", *in.FromEmailAddress)
		require.Equal(t, []string{"a@example.com", "b@example.com"}, in.Destination.ToAddresses)
		require.Equal(t, "daily screen", *in.Content.Simple.Subject.Data)
		require.Equal(t, "<pre>hi</pre>", *in.Content.Simple.Body.Html.Data)
	})

	t.Run("requires recipients", func(t *testing.T) {
		client := &fakeSesClient{}
		h := &emailRepositoryHandler{client: client, fromEmail: "screens@example.com"}
		require.Error(t, h.SendEmail(context.Background(), nil, "daily screen", "body"))
		require.Empty(t, client.inputs)
	})

	t.Run("wraps ses errors", func(t *testing.T) {
		client := &fakeSesClient{err: errors.New("throttled")}
		h := &emailRepositoryHandler{client: client, fromEmail: "screens@example.com"}
		err := h.SendEmail(context.Background(), []string{"a@example.com"}, "daily screen", "body")
		require.ErrorContains(t, err, "throttled")
	})
}
