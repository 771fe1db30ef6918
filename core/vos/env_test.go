package vos

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func ExampleCopyEnv() {
	env := NewMapEnv()
	CopyEnv(env, EnvList{"A=B", "C=D", "E", "F=G=H"})

	fmt.Printf("Environ(): %q\n", env.Environ())
	fmt.Printf("Getenv(\"F\"): %q\n", env.Getenv("F"))

	// Output: Environ(): ["A=B" "C=D" "E=" "F=G=H"]
	// Getenv("F"): "G=H"
}

func ExampleNewMapEnvFrom() {
	env := NewMapEnvFrom(EnvList{"A=B", "C=D", "E", "F=G=H"})

	fmt.Printf("Environ(): %q\n", env.Environ())
	fmt.Printf("Getenv(\"F\"): %q\n", env.Getenv("F"))

	// Output: Environ(): ["A=B" "C=D" "E=" "F=G=H"]
	// Getenv("F"): "G=H"
}

func ExampleMapEnv_Unsetenv() {
	env := NewMapEnv()
	env.Setenv("A", "B")
	env.Setenv("C", "D")

	fmt.Println("Before:", env.Environ())
	env.Unsetenv("A")
	fmt.Println("After:", env.Environ())

	// Output: Before: [A=B C=D]
	// After: [C=D]
}

func ExampleMapEnv_LookupEnv() {
	env := NewMapEnv()
	env.Setenv("A", "B")

	val, ok := env.LookupEnv("A")
	fmt.Println("Existing", "val:", val, "ok:", ok)
	val, ok = env.LookupEnv("B")
	fmt.Println("Missing", "val:", val, "ok:", ok)

	// Output: Existing val: B ok: true
	// Missing val:  ok: false
}

func ExampleMapEnv_ExpandEnv() {
	env := NewMapEnv()
	env.Setenv("USER", "shell")

	fmt.Println(env.ExpandEnv("hello $USER from ${HOME}!"))

	// Output: hello shell from !
}

func TestMapEnv_Setenv(t *testing.T) {
	cases := map[string]struct {
		key     string
		wantErr bool
	}{
		"identifier": {key: "ANDROID_DATA"},
		"lowercase":  {key: "pid"},
		"empty":      {key: "", wantErr: true},
		"equals":     {key: "A=B", wantErr: true},
		"space":      {key: "A B", wantErr: true},
		"newline":    {key: "A\n", wantErr: true},
	}

	for tn, tc := range cases {
		t.Run(tn, func(t *testing.T) {
			env := NewMapEnv()
			err := env.Setenv(tc.key, "value")

			if tc.wantErr {
				assert.Error(t, err)
				assert.Empty(t, env.Environ())
			} else {
				assert.NoError(t, err)
				assert.Equal(t, "value", env.Getenv(tc.key))
			}
		})
	}
}

func TestMapEnv_zeroValue(t *testing.T) {
	var env MapEnv
	assert.NoError(t, env.Setenv("A", "B"))
	assert.Equal(t, []string{"A=B"}, env.Environ())
}
