package scan

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"sync"
)

const (
	mapExt = ".sc2map"
	modExt = ".sc2mod"

	// modsDir is the optional per-campaign subdirectory holding mod
	// files.
	modsDir = "mods"
)

// File is one discovered map or mod file, hashed over its full
// content.
type File struct {
	Name    string
	RelPath string
	Size    int64
	Hash    string
}

// Campaign is one campaign directory and the files found in it.
// Title is the directory name and may contain spaces.
type Campaign struct {
	Title string
	Files []File
}

type fileJob struct {
	campaign int
	name     string
	relPath  string
	absPath  string
}

type hashResult struct {
	job  fileJob
	size int64
	hash string
	err  error
}

// Campaigns scans root for campaign directories and hashes every
// recognized file. Each immediate subdirectory holding at least one
// map file (or mod file under mods/) becomes a campaign; hidden
// directories are skipped. Any unreadable file fails the whole scan.
func Campaigns(root string, excludes []string) ([]Campaign, error) {
	matcher := NewExcludeMatcher(excludes)

	dirs, err := campaignDirs(root, matcher)
	if err != nil {
		return nil, err
	}

	campaigns := make([]Campaign, len(dirs))
	var jobs []fileJob
	for i, dir := range dirs {
		campaigns[i] = Campaign{Title: dir}
		found, err := discoverFiles(root, dir, i, matcher)
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, found...)
	}

	results, err := hashAll(jobs)
	if err != nil {
		return nil, err
	}

	for _, r := range results {
		c := &campaigns[r.job.campaign]
		c.Files = append(c.Files, File{
			Name:    r.job.name,
			RelPath: r.job.relPath,
			Size:    r.size,
			Hash:    r.hash,
		})
	}

	var out []Campaign
	for _, c := range campaigns {
		if len(c.Files) == 0 {
			continue
		}
		sort.Slice(c.Files, func(i, j int) bool {
			return c.Files[i].RelPath < c.Files[j].RelPath
		})
		if err := checkUnique(c); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}

func campaignDirs(
	root string, matcher *ExcludeMatcher,
) ([]string, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, fmt.Errorf("read root %s: %w", root, err)
	}

	var dirs []string
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		name := e.Name()
		if strings.HasPrefix(name, ".") {
			continue
		}
		if matcher.Match(name) {
			continue
		}
		dirs = append(dirs, name)
	}
	sort.Strings(dirs)
	return dirs, nil
}

func discoverFiles(
	root, dir string,
	campaign int,
	matcher *ExcludeMatcher,
) ([]fileJob, error) {
	jobs, err := filesIn(
		root, dir, campaign, mapExt, matcher,
	)
	if err != nil {
		return nil, err
	}

	modJobs, err := filesIn(
		root, path.Join(dir, modsDir), campaign, modExt, matcher,
	)
	if err != nil {
		return nil, err
	}
	return append(jobs, modJobs...), nil
}

func filesIn(
	root, rel string,
	campaign int,
	ext string,
	matcher *ExcludeMatcher,
) ([]fileJob, error) {
	abs := filepath.Join(root, filepath.FromSlash(rel))
	entries, err := os.ReadDir(abs)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read dir %s: %w", rel, err)
	}

	var jobs []fileJob
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		if !strings.EqualFold(filepath.Ext(name), ext) {
			continue
		}
		relPath := path.Join(rel, name)
		if matcher.Match(relPath) {
			continue
		}
		jobs = append(jobs, fileJob{
			campaign: campaign,
			name:     name,
			relPath:  relPath,
			absPath:  filepath.Join(abs, name),
		})
	}
	return jobs, nil
}

func hashAll(jobs []fileJob) ([]hashResult, error) {
	workers := runtime.NumCPU()
	if workers > len(jobs) {
		workers = len(jobs)
	}
	if workers == 0 {
		return nil, nil
	}

	jobCh := make(chan fileJob, len(jobs))
	resultCh := make(chan hashResult, len(jobs))

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			hashWorker(jobCh, resultCh)
		}()
	}

	for _, j := range jobs {
		jobCh <- j
	}
	close(jobCh)

	wg.Wait()
	close(resultCh)

	results := make([]hashResult, 0, len(jobs))
	for r := range resultCh {
		if r.err != nil {
			return nil, r.err
		}
		results = append(results, r)
	}
	return results, nil
}

func hashWorker(
	jobs <-chan fileJob,
	results chan<- hashResult,
) {
	buf := make([]byte, 1<<20)
	for j := range jobs {
		size, hash, err := hashFile(j.absPath, buf)
		if err != nil {
			err = fmt.Errorf("hash %s: %w", j.relPath, err)
		}
		results <- hashResult{
			job: j, size: size, hash: hash, err: err,
		}
	}
}

func hashFile(absPath string, buf []byte) (int64, string, error) {
	f, err := os.Open(absPath)
	if err != nil {
		return 0, "", err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return 0, "", err
	}

	h := sha256.New()
	if _, err := io.CopyBuffer(h, f, buf); err != nil {
		return 0, "", err
	}
	return info.Size(), hex.EncodeToString(h.Sum(nil)), nil
}

// checkUnique rejects campaigns with colliding entry names. Names are
// compared case-insensitively: downstream consumers on
// case-insensitive filesystems cannot tell such files apart.
func checkUnique(c Campaign) error {
	seen := make(map[string]string, len(c.Files))
	for _, f := range c.Files {
		key := strings.ToLower(f.Name)
		if prev, ok := seen[key]; ok {
			return fmt.Errorf(
				"duplicate file name %q in campaign %q (%s and %s)",
				f.Name, c.Title, prev, f.RelPath,
			)
		}
		seen[key] = f.RelPath
	}
	return nil
}
