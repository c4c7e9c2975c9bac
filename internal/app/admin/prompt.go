package admin

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/Apurer/coffee-admin/internal/shared/resource"
)

// promptConfirmer asks on out and accepts "y" or "yes" from in. Anything
// else, including end of input, declines.
func promptConfirmer(in io.Reader, out io.Writer) resource.Confirmer {
	return resource.ConfirmFunc(func(prompt string) bool {
		fmt.Fprintf(out, "%s [y/N]: ", prompt)
		line, err := bufio.NewReader(in).ReadString('\n')
		if err != nil && line == "" {
			fmt.Fprintln(out)
			return false
		}
		switch strings.ToLower(strings.TrimSpace(line)) {
		case "y", "yes":
			return true
		}
		return false
	})
}
