package similarity

import (
	"testing"

	"github.com/stretchr/testify/suite"
)

type SimilaritySuite struct {
	suite.Suite
}

func TestSimilaritySuite(t *testing.T) {
	suite.Run(t, new(SimilaritySuite))
}

var corpus = []string{"", "a", "smith", "smyth", "schmidt", "kitten", "sitting", "José", "jose", "Robert", "Rupert"}

func (s *SimilaritySuite) TestEditDistance() {
	s.Run("identity is zero", func() {
		for _, w := range corpus {
			s.Equal(0, EditDistance(w, w), w)
		}
	})

	s.Run("distance to empty is rune length", func() {
		for _, w := range corpus {
			s.Equal(len([]rune(w)), EditDistance(w, ""), w)
			s.Equal(len([]rune(w)), EditDistance("", w), w)
		}
	})

	s.Run("classic pair", func() {
		s.Equal(3, EditDistance("kitten", "sitting"))
	})

	s.Run("case-sensitive", func() {
		s.Equal(1, EditDistance("Smith", "smith"))
	})

	s.Run("triangle inequality", func() {
		for _, a := range corpus {
			for _, b := range corpus {
				for _, c := range corpus {
					s.LessOrEqual(EditDistance(a, c), EditDistance(a, b)+EditDistance(b, c))
				}
			}
		}
	})
}

func (s *SimilaritySuite) TestSimilarity() {
	s.Equal(1.0, Similarity("", ""))
	s.Equal(0.0, Similarity("abc", ""))
	s.InDelta(0.8, Similarity("smith", "smyth"), 1e-9)
	s.InDelta(0.75, Similarity("johnston", "johnsen"), 1e-9)
	for _, a := range corpus {
		for _, b := range corpus {
			v := Similarity(a, b)
			s.GreaterOrEqual(v, 0.0)
			s.LessOrEqual(v, 1.0)
		}
	}
}

func (s *SimilaritySuite) TestPhoneticCode() {
	s.Run("case-insensitive", func() {
		s.Equal(PhoneticCode("Robert"), PhoneticCode("ROBERT"))
		s.Equal(PhoneticCode("robert"), PhoneticCode("Robert"))
	})

	s.Run("classic pairs", func() {
		s.Equal("R163", PhoneticCode("Robert"))
		s.Equal("R163", PhoneticCode("Rupert"))
		s.Equal(PhoneticCode("Smith"), PhoneticCode("Smyth"))
	})

	s.Run("first letter seeds the previous class", func() {
		s.Equal("P236", PhoneticCode("Pfister"))
	})

	s.Run("classless letters do not reset the class", func() {
		s.Equal("A261", PhoneticCode("Ashcraft"))
		s.Equal("T520", PhoneticCode("Tymczak"))
	})

	s.Run("padded and truncated to four", func() {
		s.Equal("L000", PhoneticCode("Lee"))
		s.Equal("W252", PhoneticCode("Washington"))
	})

	s.Run("non-letters are stripped", func() {
		s.Equal(PhoneticCode("OBrien"), PhoneticCode("O'Brien"))
		s.Equal("J200", PhoneticCode("José"))
	})

	s.Run("empty and letterless input", func() {
		s.Equal("", PhoneticCode(""))
		s.Equal("", PhoneticCode("1234 !?"))
	})
}

func (s *SimilaritySuite) TestPhoneticTokensEqual() {
	s.True(PhoneticTokensEqual("jon smith", "john smyth"))
	s.False(PhoneticTokensEqual("jon smith", "smith"))
	s.False(PhoneticTokensEqual("jon smith", "jon jones"))
	s.False(PhoneticTokensEqual("", ""))
}

func (s *SimilaritySuite) TestNormalizePhone() {
	s.Equal("15551234567", NormalizePhone("+1 (555) 123-4567"))
	s.Equal("", NormalizePhone(""))
	s.Equal("", NormalizePhone("n/a"))
}

func (s *SimilaritySuite) TestNormalizeDocument() {
	s.Equal("P123456", NormalizeDocument("p-123 456"))
	s.Equal("", NormalizeDocument(" - "))
}

func (s *SimilaritySuite) TestNormalizeName() {
	s.Equal("jose obrien smith", NormalizeName("  José  O'Brien-Smith "))
	s.Equal("jon smith", NormalizeName("JON\tSMITH"))
	s.Equal("", NormalizeName("   "))
	s.Equal(NormalizeName("François"), NormalizeName("Francois"))
}

func (s *SimilaritySuite) TestNormalizeOrganization() {
	s.Equal("acme holdings", NormalizeOrganization("Acme Holdings Co. Ltd"))
	s.Equal("muller and sohne", NormalizeOrganization("Müller & Söhne GmbH"))
	s.Equal("globex", NormalizeOrganization("GLOBEX, L.L.C."))
	s.Equal("llc", NormalizeOrganization("LLC"))
	s.Equal("", NormalizeOrganization(""))
}
