package validate

// Options configure a validation call
type Options struct {
	StrictColumns bool // report columns or keys which are not declared by the Schema
	Parallelism   int  // maximum number of fields whose content is checked concurrently
	SampleSize    int  // maximum number of sampled values and rows per failure
}

// Option modifies Options
type Option func(*Options)

// DefaultSampleSize is the default cap on sampled offending values
const DefaultSampleSize = 5

// Lenient allows a Table (or record) to carry columns which the Schema does not declare
func Lenient() Option {
	return func(o *Options) {
		o.StrictColumns = false
	}
}

// WithParallelism checks the content of up to n fields concurrently
func WithParallelism(n int) Option {
	return func(o *Options) {
		o.Parallelism = n
	}
}

// WithSampleSize caps the number of sampled offending values and rows per failure
func WithSampleSize(n int) Option {
	return func(o *Options) {
		o.SampleSize = n
	}
}

func buildOptions(opts []Option) *Options {
	o := &Options{
		StrictColumns: true,
		Parallelism:   1,
		SampleSize:    DefaultSampleSize,
	}
	for _, opt := range opts {
		opt(o)
	}
	if o.Parallelism < 1 {
		o.Parallelism = 1
	}
	if o.SampleSize < 0 {
		o.SampleSize = 0
	}
	return o
}
