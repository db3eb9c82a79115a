package routing

import (
	"bufio"
	"errors"
	"io"
	"os"
	"strings"

	"github.com/dsnet/compress/bzip2"
	"github.com/lintang-b-s/routeplanner/pkg"
	da "github.com/lintang-b-s/routeplanner/pkg/datastructure"
	"github.com/lintang-b-s/routeplanner/pkg/util"
	"go.uber.org/zap"
)

type LoadSummary struct {
	Read             int // non-blank records
	Added            int
	SkippedUnknown   int // at least one city not in the registry
	SkippedMalformed int // fewer than two fields
}

// ReadLinks appends the links of a tab separated file ("origin\tdestination[\t...]"), compressed with bzip2
// if the name ends in .bz2. A missing or unreadable file is logged and adds nothing; the links loaded
// before the call stay untouched. The returned error is informational.
func (re *RoutingEngine) ReadLinks(filename string) (LoadSummary, error) {
	re.logger.Info("ReadLinks started", zap.String("filename", filename))

	f, err := os.Open(filename)
	if err != nil {
		re.logger.Error("ReadLinks failed", zap.String("filename", filename), zap.Error(err))
		return LoadSummary{}, util.WrapErrorf(err, util.ErrNotFound, "reading links from %s", filename)
	}
	defer f.Close()

	var r io.Reader = f
	if strings.HasSuffix(filename, ".bz2") {
		bz, err := bzip2.NewReader(f, nil)
		if err != nil {
			re.logger.Error("ReadLinks failed", zap.String("filename", filename), zap.Error(err))
			return LoadSummary{}, util.WrapErrorf(err, util.ErrInternalServerError, "decompressing %s", filename)
		}
		defer bz.Close()
		r = bz
	}

	summary, err := re.LoadLinks(r)
	if err != nil {
		re.logger.Error("ReadLinks failed", zap.String("filename", filename), zap.Error(err))
		return summary, util.WrapErrorf(err, util.ErrInternalServerError, "reading links from %s", filename)
	}

	re.logger.Info("ReadLinks ended", zap.String("filename", filename),
		zap.Int("read", summary.Read), zap.Int("added", summary.Added),
		zap.Int("skippedUnknown", summary.SkippedUnknown), zap.Int("skippedMalformed", summary.SkippedMalformed),
		zap.Int("total", re.Count()))
	return summary, nil
}

// LoadLinks parses every record of r before touching the link set. On a read error nothing is added.
// Both cities of a record must resolve, otherwise the record is skipped. New links get pkg.DEFAULT_LOAD_MODE.
func (re *RoutingEngine) LoadLinks(r io.Reader) (LoadSummary, error) {
	br := bufio.NewReader(r)
	summary := LoadSummary{}
	staged := make([]da.Link, 0)

	for {
		line, err := util.ReadLine(br)
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return LoadSummary{}, err
		}
		if strings.TrimSpace(line) == "" {
			continue
		}
		summary.Read++

		tokens := strings.Split(line, "\t")
		if len(tokens) < 2 {
			summary.SkippedMalformed++
			continue
		}

		from, okFrom := re.cities.FindCity(tokens[0])
		to, okTo := re.cities.FindCity(tokens[1])
		if !okFrom || !okTo {
			summary.SkippedUnknown++
			continue
		}
		staged = append(staged, da.NewLink(from, to, pkg.DEFAULT_LOAD_MODE))
	}

	re.mu.Lock()
	defer re.mu.Unlock()
	re.links = append(re.links, staged...)
	summary.Added = len(staged)
	if summary.Added > 0 {
		re.purgeCache()
	}
	return summary, nil
}
