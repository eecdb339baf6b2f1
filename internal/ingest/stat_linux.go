//go:build linux

package ingest

import (
	"io/fs"
	"strings"
	"syscall"
	"time"

	"github.com/kopischke/mdsearch/internal/attr"
)

// userTagsXattr is the freedesktop.org extended attribute carrying
// comma-separated user tags.
const userTagsXattr = "user.xdg.tags"

// platformAttributes adds the attributes only the OS can answer: inode
// times and user tags. Linux exposes no portable file birth time, so the
// inode change time stands in for the creation date; access time serves
// as last-used.
func platformAttributes(p string, info fs.FileInfo) map[string]any {
	out := map[string]any{}

	if st, ok := info.Sys().(*syscall.Stat_t); ok {
		out[attr.CreationDate] = time.Unix(int64(st.Ctim.Sec), int64(st.Ctim.Nsec)).UTC()
		out[attr.LastUsedDate] = time.Unix(int64(st.Atim.Sec), int64(st.Atim.Nsec)).UTC()
	}

	if tags := readUserTags(p); len(tags) > 0 {
		out[attr.UserTags] = tags
	}
	return out
}

func readUserTags(p string) []any {
	size, err := syscall.Getxattr(p, userTagsXattr, nil)
	if err != nil || size <= 0 {
		return nil
	}

	buf := make([]byte, size)
	n, err := syscall.Getxattr(p, userTagsXattr, buf)
	if err != nil || n <= 0 {
		return nil
	}

	var tags []any
	for _, tag := range strings.Split(string(buf[:n]), ",") {
		if t := strings.TrimSpace(tag); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}
