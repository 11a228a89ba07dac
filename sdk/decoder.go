package sdk

// DecodedOperation is a contract call resolved against its metadata.
type DecodedOperation interface {
	MethodName() string
	Args() []any

	// String returns a human readable representation of the decoded operation.
	//
	// The first return value is the method name.
	// The second return value is a string representation of the input arguments.
	// The third return value is an error if there was an issue generating the string.
	String() (string, string, error)
}

// Decoder decodes contract call data.
type Decoder interface {
	// Decode decodes the 0x-prefixed hex call data of a contract message.
	//
	// contractMetadata is the JSON metadata of the contract the call is addressed to.
	Decode(data string, contractMetadata string) (DecodedOperation, error)
}
