//go:build windows

package trayicon

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetIconKeepsOldIconWhenReAddFails(t *testing.T) {
	var ops []uintptr
	failAdds := 1
	prev := shellNotifyIcon
	shellNotifyIcon = func(op uintptr, nid *notifyIconData) error {
		ops = append(ops, op)
		if op == nimAdd && failAdds > 0 {
			failAdds--
			return errors.New("shell busy")
		}
		return nil
	}
	t.Cleanup(func() { shellNotifyIcon = prev })

	icon, err := FromRGBA([]byte{255, 0, 0, 255}, 1, 1)
	require.NoError(t, err)
	old, err := createHIcon(icon)
	require.NoError(t, err)

	tray := &winTray{uid: 1, hicon: old, visible: true}
	defer destroyHIcon(tray.hicon)

	err = tray.setIcon(nil)
	var osErr *OSError
	require.ErrorAs(t, err, &osErr)
	assert.Equal(t, old, tray.hicon)
	assert.Equal(t, []uintptr{nimDelete, nimAdd, nimAdd}, ops)
}
