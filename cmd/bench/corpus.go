package main

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"math/rand/v2"
	"strconv"

	"github.com/Neumenon/fastin/fastin"
)

type shape uint8

const (
	shapeInts shape = iota
	shapeFloats
	shapeMixed
)

type corpus struct {
	name  string
	shape shape
}

var corpora = []corpus{
	{"ints", shapeInts},
	{"floats", shapeFloats},
	{"mixed", shapeMixed},
}

// method reads a whole corpus and returns a checksum and the token count.
type method struct {
	name string
	read func(c corpus, data []byte) (float64, int, error)
}

var methods = []method{
	{"fastin", readFastin},
	{"fmt.Fscan", readFscan},
	{"bufio.Scanner", readScanner},
}

// generate produces roughly n tokens of the corpus shape.
func (c corpus) generate(n int, seed uint64) []byte {
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	buf := make([]byte, 0, n*8)

	sep := func(i int) byte {
		if i%10 == 9 {
			return '\n'
		}
		return ' '
	}

	switch c.shape {
	case shapeInts:
		for i := 0; i < n; i++ {
			buf = strconv.AppendInt(buf, rng.Int64N(2_000_000_000_000)-1_000_000_000_000, 10)
			buf = append(buf, sep(i))
		}
	case shapeFloats:
		for i := 0; i < n; i++ {
			f := float64(rng.Int64N(2_000_000_000)-1_000_000_000) / 1e6
			buf = strconv.AppendFloat(buf, f, 'f', -1, 64)
			buf = append(buf, sep(i))
		}
	case shapeMixed:
		for i := 0; i < n; {
			word := make([]byte, 3+rng.IntN(6))
			for j := range word {
				word[j] = 'a' + byte(rng.IntN(26))
			}
			k := 1 + rng.IntN(20)
			buf = append(buf, word...)
			buf = append(buf, ' ')
			buf = strconv.AppendInt(buf, int64(k), 10)
			buf = append(buf, '\n')
			for j := 0; j < k; j++ {
				buf = strconv.AppendInt(buf, rng.Int64N(100000), 10)
				buf = append(buf, ' ')
			}
			buf = append(buf, '\n')
			i += k + 2
		}
	}
	return buf
}

func readFastin(c corpus, data []byte) (float64, int, error) {
	r := fastin.NewReader(bytes.NewReader(data))
	var (
		isum int64
		fsum float64
		n    int
		word []byte
	)
	switch c.shape {
	case shapeInts:
		for r.More() {
			v, err := fastin.Next[int64](r)
			if err != nil {
				return 0, n, err
			}
			isum += v
			n++
		}
	case shapeFloats:
		for r.More() {
			v, err := fastin.Next[float64](r)
			if err != nil {
				return 0, n, err
			}
			fsum += v
			n++
		}
	case shapeMixed:
		for {
			var err error
			word, err = r.AppendToken(word[:0])
			if err == io.EOF {
				break
			}
			if err != nil {
				return 0, n, err
			}
			k, err := fastin.Next[int](r)
			if err != nil {
				return 0, n, err
			}
			isum += int64(len(word))
			for j := 0; j < k; j++ {
				v, err := fastin.Next[int64](r)
				if err != nil {
					return 0, n, err
				}
				isum += v
			}
			n += k + 2
		}
	}
	return float64(isum) + fsum, n, r.Err()
}

func readFscan(c corpus, data []byte) (float64, int, error) {
	br := bufio.NewReader(bytes.NewReader(data))
	var (
		isum int64
		fsum float64
		n    int
	)
	switch c.shape {
	case shapeInts:
		for {
			var v int64
			if _, err := fmt.Fscan(br, &v); err == io.EOF {
				break
			} else if err != nil {
				return 0, n, err
			}
			isum += v
			n++
		}
	case shapeFloats:
		for {
			var v float64
			if _, err := fmt.Fscan(br, &v); err == io.EOF {
				break
			} else if err != nil {
				return 0, n, err
			}
			fsum += v
			n++
		}
	case shapeMixed:
		for {
			var (
				word string
				k    int
			)
			if _, err := fmt.Fscan(br, &word, &k); err == io.EOF {
				break
			} else if err != nil {
				return 0, n, err
			}
			isum += int64(len(word))
			for j := 0; j < k; j++ {
				var v int64
				if _, err := fmt.Fscan(br, &v); err != nil {
					return 0, n, err
				}
				isum += v
			}
			n += k + 2
		}
	}
	return float64(isum) + fsum, n, nil
}

func readScanner(c corpus, data []byte) (float64, int, error) {
	sc := bufio.NewScanner(bytes.NewReader(data))
	sc.Split(bufio.ScanWords)
	var (
		isum int64
		fsum float64
		n    int
	)
	next := func() (string, bool) {
		if !sc.Scan() {
			return "", false
		}
		return sc.Text(), true
	}

	switch c.shape {
	case shapeInts:
		for tok, ok := next(); ok; tok, ok = next() {
			v, err := strconv.ParseInt(tok, 10, 64)
			if err != nil {
				return 0, n, err
			}
			isum += v
			n++
		}
	case shapeFloats:
		for tok, ok := next(); ok; tok, ok = next() {
			v, err := strconv.ParseFloat(tok, 64)
			if err != nil {
				return 0, n, err
			}
			fsum += v
			n++
		}
	case shapeMixed:
		for word, ok := next(); ok; word, ok = next() {
			tok, _ := next()
			k, err := strconv.Atoi(tok)
			if err != nil {
				return 0, n, err
			}
			isum += int64(len(word))
			for j := 0; j < k; j++ {
				tok, _ := next()
				v, err := strconv.ParseInt(tok, 10, 64)
				if err != nil {
					return 0, n, err
				}
				isum += v
			}
			n += k + 2
		}
	}
	return float64(isum) + fsum, n, sc.Err()
}
