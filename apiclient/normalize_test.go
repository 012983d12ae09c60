package apiclient_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/stocklens/go-inventory-client/apiclient"
)

type record struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

func TestDecodeListBothShapesAreIdentical(t *testing.T) {
	bare := []byte(`[{"id":1,"name":"bolt"},{"id":2,"name":"nut"}]`)
	enveloped := []byte(`{"count":2,"results":[{"id":1,"name":"bolt"},{"id":2,"name":"nut"}]}`)

	fromBare, err := apiclient.DecodeList[record](bare)
	require.NoError(t, err)

	fromEnvelope, err := apiclient.DecodeList[record](enveloped)
	require.NoError(t, err)

	require.Equal(t, fromBare, fromEnvelope)
	require.Equal(t, []record{{ID: 1, Name: "bolt"}, {ID: 2, Name: "nut"}}, fromBare)
}

func TestDecodeListPreservesOrder(t *testing.T) {
	payload := []byte(`{"results":[{"id":3},{"id":1},{"id":2}]}`)

	out, err := apiclient.DecodeList[record](payload)
	require.NoError(t, err)
	require.Equal(t, []int{3, 1, 2}, []int{out[0].ID, out[1].ID, out[2].ID})
}

func TestDecodeListEmptyShapes(t *testing.T) {
	fromBare, err := apiclient.DecodeList[record]([]byte(`[]`))
	require.NoError(t, err)
	require.Empty(t, fromBare)

	fromEnvelope, err := apiclient.DecodeList[record]([]byte(`{"results":[]}`))
	require.NoError(t, err)
	require.Empty(t, fromEnvelope)

	// An envelope without a results key still yields a sequence.
	missing, err := apiclient.DecodeList[record]([]byte(`{}`))
	require.NoError(t, err)
	require.NotNil(t, missing)
	require.Empty(t, missing)
}

func TestDecodeListLeadingWhitespace(t *testing.T) {
	out, err := apiclient.DecodeList[record]([]byte("\n\t [{\"id\":7}]"))
	require.NoError(t, err)
	require.Len(t, out, 1)
	require.Equal(t, 7, out[0].ID)
}

func TestDecodeListRejectsMalformedPayload(t *testing.T) {
	_, err := apiclient.DecodeList[record]([]byte(`[{"id":`))
	require.Error(t, err)

	_, err = apiclient.DecodeList[record]([]byte(`not json`))
	require.Error(t, err)
}
