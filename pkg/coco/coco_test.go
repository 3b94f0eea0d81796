package coco

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIntBool(t *testing.T) {
	t.Run("marshal", func(t *testing.T) {
		data, err := json.Marshal(IntBool(true))
		require.NoError(t, err)
		assert.Equal(t, "1", string(data))

		data, err = json.Marshal(IntBool(false))
		require.NoError(t, err)
		assert.Equal(t, "0", string(data))
	})

	t.Run("unmarshal", func(t *testing.T) {
		var b IntBool
		require.NoError(t, json.Unmarshal([]byte("1"), &b))
		assert.True(t, bool(b))

		require.NoError(t, json.Unmarshal([]byte("0"), &b))
		assert.False(t, bool(b))

		assert.Error(t, json.Unmarshal([]byte("2"), &b))
		assert.Error(t, json.Unmarshal([]byte("true"), &b))
	})
}

func TestAnnotationDiscriminator(t *testing.T) {
	tests := []struct {
		name string
		data string
		want AnnotationKind
	}{
		{
			name: "object detection",
			data: `{"id":1,"image_id":2,"category_id":3,"segmentation":[[1,2,3,4]],"area":10,"bbox":[0,0,5,5],"iscrowd":0}`,
			want: AnnotationObjectDetection,
		},
		{
			name: "keypoints win over object detection fields",
			data: `{"id":1,"image_id":2,"category_id":3,"segmentation":[[1,2]],"area":10,"bbox":[0,0,5,5],"iscrowd":0,"keypoints":[1,1,2],"num_keypoints":1}`,
			want: AnnotationKeypointDetection,
		},
		{
			name: "panoptic",
			data: `{"image_id":2,"file_name":"a.png","segments_info":[{"id":7,"category_id":1,"area":4,"bbox":[0,0,2,2],"iscrowd":0}]}`,
			want: AnnotationPanopticSegmentation,
		},
		{
			name: "caption",
			data: `{"id":1,"image_id":2,"caption":"a dog"}`,
			want: AnnotationImageCaptioning,
		},
		{
			name: "dense pose",
			data: `{"id":1,"image_id":2,"category_id":1,"iscrowd":0,"area":4,"bbox":[0,0,2,2],"dp_I":[1],"dp_U":[0.1],"dp_V":[0.2],"dp_x":[3],"dp_y":[4],"dp_masks":[{"counts":[1,2],"size":[2,2]}]}`,
			want: AnnotationDensePose,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var a Annotation
			require.NoError(t, json.Unmarshal([]byte(tt.data), &a))
			assert.Equal(t, tt.want, a.Kind())
		})
	}

	t.Run("no variant matches", func(t *testing.T) {
		var a Annotation
		assert.Error(t, json.Unmarshal([]byte(`{"id":1,"image_id":2}`), &a))
	})
}

func TestAnnotationRoundTrip(t *testing.T) {
	data := `{"id":5,"image_id":9,"category_id":3,"segmentation":{"counts":[10,4],"size":[4,4]},"area":16,"bbox":[0,0,4,4],"iscrowd":1}`

	var a Annotation
	require.NoError(t, json.Unmarshal([]byte(data), &a))
	require.NotNil(t, a.ObjectDetection)
	require.NotNil(t, a.ObjectDetection.Segmentation.RLE)
	assert.Equal(t, []int{10, 4}, a.ObjectDetection.Segmentation.RLE.Counts)
	assert.True(t, bool(a.ObjectDetection.IsCrowd))

	out, err := json.Marshal(a)
	require.NoError(t, err)
	assert.JSONEq(t, data, string(out))
}

func TestAnnotationImageID(t *testing.T) {
	a := Annotation{Caption: &CaptionAnnotation{ID: 1, ImageID: 42}}
	assert.Equal(t, int64(42), a.ImageID())

	a.SetImageID(7)
	assert.Equal(t, int64(7), a.Caption.ImageID)

	clone := a.Clone()
	clone.SetImageID(99)
	assert.Equal(t, int64(7), a.Caption.ImageID)
}

func TestCategoryDiscriminator(t *testing.T) {
	tests := []struct {
		name string
		data string
		want CategoryKind
	}{
		{
			name: "object detection",
			data: `{"id":1,"name":"dog","supercategory":"animal"}`,
			want: CategoryObjectDetection,
		},
		{
			name: "keypoint",
			data: `{"id":1,"name":"person","supercategory":"person","keypoints":["nose"],"skeleton":[[1,2]]}`,
			want: CategoryKeypointDetection,
		},
		{
			name: "panoptic via isthing",
			data: `{"id":1,"name":"sky","supercategory":"background","isthing":0,"color":[0,0,255]}`,
			want: CategoryPanopticSegmentation,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var c Category
			require.NoError(t, json.Unmarshal([]byte(tt.data), &c))
			assert.Equal(t, tt.want, c.Kind())
		})
	}
}

func TestCategoryKey(t *testing.T) {
	a := Category{ObjectDetection: &ObjectDetectionCategory{ID: 1, Name: "dog", Supercategory: "animal"}}
	b := Category{ObjectDetection: &ObjectDetectionCategory{ID: 99, Name: "dog", Supercategory: "animal"}}
	c := Category{ObjectDetection: &ObjectDetectionCategory{ID: 1, Name: "cat", Supercategory: "animal"}}

	assert.Equal(t, a.Key(), b.Key(), "id must not affect the content key")
	assert.NotEqual(t, a.Key(), c.Key())

	kp := Category{Keypoint: &KeypointCategory{ID: 1, Name: "dog", Supercategory: "animal"}}
	assert.NotEqual(t, a.Key(), kp.Key(), "same names in different variants must not collide")
}

func TestCategoryWithID(t *testing.T) {
	orig := Category{Keypoint: &KeypointCategory{ID: 1, Name: "person", Keypoints: []string{"nose"}}}
	renum := orig.WithID(10)

	assert.Equal(t, 10, renum.EntityID())
	assert.Equal(t, 1, orig.EntityID())

	renum.Keypoint.Keypoints[0] = "ear"
	assert.Equal(t, "nose", orig.Keypoint.Keypoints[0], "WithID must deep copy")
}

func TestLicenseKey(t *testing.T) {
	a := License{ID: 1, Name: "CC-BY", URL: "https://example.com/cc"}
	b := License{ID: 5, Name: "CC-BY", URL: "https://example.com/cc"}
	c := License{ID: 1, Name: "CC-BY", URL: "https://example.com/other"}

	assert.Equal(t, a.Key(), b.Key())
	assert.NotEqual(t, a.Key(), c.Key())
	assert.Equal(t, 9, b.WithID(9).ID)
}

func TestImageIDMap(t *testing.T) {
	f := &File{
		Images: []Image{
			{ID: 1, FileName: "a.jpg"},
			{ID: 2, FileName: "b.jpg"},
		},
		Annotations: []Annotation{
			{Caption: &CaptionAnnotation{ID: 10, ImageID: 1, Caption: "x"}},
			{Caption: &CaptionAnnotation{ID: 11, ImageID: 1, Caption: "y"}},
			{Caption: &CaptionAnnotation{ID: 12, ImageID: 99, Caption: "orphan"}},
		},
	}

	entries := f.ImageIDMap()
	require.Len(t, entries, 2)
	assert.Len(t, entries[1].Annotations, 2)
	assert.Empty(t, entries[2].Annotations)
}

func TestSummarize(t *testing.T) {
	f := &File{
		Images: []Image{{ID: 1}},
		Annotations: []Annotation{
			{Caption: &CaptionAnnotation{ID: 1, ImageID: 1}},
			{ObjectDetection: &ObjectDetectionAnnotation{ID: 2, ImageID: 1}},
			{ObjectDetection: &ObjectDetectionAnnotation{ID: 3, ImageID: 1}},
		},
		Categories: []Category{
			{ObjectDetection: &ObjectDetectionCategory{ID: 1, Name: "dog"}},
		},
		Licenses: []License{{ID: 1, Name: "CC"}},
	}

	s := Summarize(f)
	assert.Equal(t, int64(1), s.Images)
	assert.Equal(t, int64(3), s.Annotations)
	assert.Equal(t, int64(2), s.AnnotationsByKind[AnnotationObjectDetection])
	assert.Equal(t, int64(1), s.AnnotationsByKind[AnnotationImageCaptioning])
	assert.Equal(t, int64(1), s.CategoriesByKind[CategoryObjectDetection])
	assert.Equal(t, int64(1), s.Licenses)
}
